package ld2410s

import (
	"encoding/hex"
	"fmt"
	"time"
)

// Version 固件版本信息
type Version struct {
	EquipmentType [4]byte
	VersionType   [2]byte
	Major         uint16
	Minor         uint16
	Patch         uint16
}

// String 版本号的点分表示，如 "7.0.5"
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// EquipmentTypeHex 设备类型的十六进制表示
func (v Version) EquipmentTypeHex() string {
	return "0x" + hex.EncodeToString(v.EquipmentType[:])
}

// VersionTypeHex 版本类型的十六进制表示
func (v Version) VersionTypeHex() string {
	return "0x" + hex.EncodeToString(v.VersionType[:])
}

// Params 六项配置参数的原始值，一次 0x71 响应整体返回
type Params struct {
	StatusFreq   uint32 // 状态上报频率，0.5Hz 单位
	DistanceFreq uint32 // 距离上报频率，0.5Hz 单位
	MaxGate      uint32 // 最远距离门编号
	MinGate      uint32 // 最近距离门编号
	Unattended   uint32 // 无人延迟，秒
	RespSpeed    uint32 // 响应速度：5=正常 10=快速
}

// metresPerGate 每个距离门对应的探测距离
const metresPerGate = 0.7

// DeviceFacts 轮询采集到的设备事实。
// 字段初始为 nil（未知），每项在一个轮询周期内至多写入一次。
type DeviceFacts struct {
	Version      *Version
	SerialNumber *string
	Params       *Params
}

// StatusFrequencyHz 状态上报频率（Hz）。原始值未知时返回 false。
func (f *DeviceFacts) StatusFrequencyHz() (float64, bool) {
	if f.Params == nil {
		return 0, false
	}
	return float64(f.Params.StatusFreq) / 2, true
}

// DistanceFrequencyHz 距离上报频率（Hz）
func (f *DeviceFacts) DistanceFrequencyHz() (float64, bool) {
	if f.Params == nil {
		return 0, false
	}
	return float64(f.Params.DistanceFreq) / 2, true
}

// MaxDistanceMetres 最远探测距离（米），由距离门编号换算
func (f *DeviceFacts) MaxDistanceMetres() (float64, bool) {
	if f.Params == nil {
		return 0, false
	}
	return float64(f.Params.MaxGate) * metresPerGate, true
}

// MinDistanceMetres 最近探测距离（米）
func (f *DeviceFacts) MinDistanceMetres() (float64, bool) {
	if f.Params == nil {
		return 0, false
	}
	return float64(f.Params.MinGate) * metresPerGate, true
}

// UnattendedDelay 无人延迟时长
func (f *DeviceFacts) UnattendedDelay() (time.Duration, bool) {
	if f.Params == nil {
		return 0, false
	}
	return time.Duration(f.Params.Unattended) * time.Second, true
}

// ResponseSpeed 响应速度模式名
func (f *DeviceFacts) ResponseSpeed() (string, bool) {
	if f.Params == nil {
		return "", false
	}
	switch f.Params.RespSpeed {
	case 5:
		return "normal", true
	case 10:
		return "fast", true
	}
	return fmt.Sprintf("mode(%d)", f.Params.RespSpeed), true
}
