package app

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/sensegate/ld2410s/internal/protocol/ld2410s"
)

// unknownValue 未采集到的事实在报告中的占位
const unknownValue = "unknown"

// Report 采集结果快照。所有字段渲染为文本，轮询提前终止时
// 未填充的字段显示 unknown。
type Report struct {
	FirmwareVersion   string `yaml:"firmwareVersion" json:"firmwareVersion"`
	EquipmentType     string `yaml:"equipmentType" json:"equipmentType"`
	VersionType       string `yaml:"versionType" json:"versionType"`
	SerialNumber      string `yaml:"serialNumber" json:"serialNumber"`
	StatusFrequency   string `yaml:"statusFrequency" json:"statusFrequency"`
	DistanceFrequency string `yaml:"distanceFrequency" json:"distanceFrequency"`
	MaxDistanceGate   string `yaml:"maxDistanceGate" json:"maxDistanceGate"`
	MinDistanceGate   string `yaml:"minDistanceGate" json:"minDistanceGate"`
	UnattendedDelay   string `yaml:"unattendedDelay" json:"unattendedDelay"`
	ResponseSpeed     string `yaml:"responseSpeed" json:"responseSpeed"`
}

// BuildReport 由设备事实生成报告快照
func BuildReport(f *ld2410s.DeviceFacts) Report {
	r := Report{
		FirmwareVersion:   unknownValue,
		EquipmentType:     unknownValue,
		VersionType:       unknownValue,
		SerialNumber:      unknownValue,
		StatusFrequency:   unknownValue,
		DistanceFrequency: unknownValue,
		MaxDistanceGate:   unknownValue,
		MinDistanceGate:   unknownValue,
		UnattendedDelay:   unknownValue,
		ResponseSpeed:     unknownValue,
	}
	if f == nil {
		return r
	}
	if f.Version != nil {
		r.FirmwareVersion = f.Version.String()
		r.EquipmentType = f.Version.EquipmentTypeHex()
		r.VersionType = f.Version.VersionTypeHex()
	}
	if f.SerialNumber != nil {
		r.SerialNumber = *f.SerialNumber
	}
	if f.Params == nil {
		return r
	}
	if hz, ok := f.StatusFrequencyHz(); ok {
		r.StatusFrequency = fmt.Sprintf("%.1f Hz", hz)
	}
	if hz, ok := f.DistanceFrequencyHz(); ok {
		r.DistanceFrequency = fmt.Sprintf("%.1f Hz", hz)
	}
	if m, ok := f.MaxDistanceMetres(); ok {
		r.MaxDistanceGate = fmt.Sprintf("%d (%.1f m)", f.Params.MaxGate, m)
	}
	if m, ok := f.MinDistanceMetres(); ok {
		r.MinDistanceGate = fmt.Sprintf("%d (%.1f m)", f.Params.MinGate, m)
	}
	if d, ok := f.UnattendedDelay(); ok {
		r.UnattendedDelay = d.String()
	}
	if s, ok := f.ResponseSpeed(); ok {
		r.ResponseSpeed = s
	}
	return r
}

// Render 渲染为 YAML 文本
func (r Report) Render() (string, error) {
	out, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return string(out), nil
}
