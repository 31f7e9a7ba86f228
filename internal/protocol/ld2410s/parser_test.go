package ld2410s

import (
	"encoding/hex"
	"errors"
	"testing"
)

// TestParseVersion 固件版本解码：设备类型01020304、版本类型0000、版本7.0.5
func TestParseVersion(t *testing.T) {
	p, _ := hex.DecodeString("0001" + "01020304" + "0000" + "0700" + "0000" + "0500")

	v, err := parseVersion(p)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if got := v.String(); got != "7.0.5" {
		t.Errorf("expected version 7.0.5, got %s", got)
	}
	if got := v.EquipmentTypeHex(); got != "0x01020304" {
		t.Errorf("expected equipment type 0x01020304, got %s", got)
	}
	if got := v.VersionTypeHex(); got != "0x0000" {
		t.Errorf("expected version type 0x0000, got %s", got)
	}
}

// TestParseVersion_Short 不足14字节按畸形响应处理
func TestParseVersion_Short(t *testing.T) {
	p, _ := hex.DecodeString("0001" + "01020304" + "0000" + "0700")

	_, err := parseVersion(p)
	var fault *ProtocolFault
	if !errors.As(err, &fault) {
		t.Fatalf("expected ProtocolFault, got %v", err)
	}
	if fault.Len != len(p) {
		t.Errorf("fault length mismatch: got %d want %d", fault.Len, len(p))
	}
}

// TestParseSerial 序列号解码：长度前缀 + ASCII字节
func TestParseSerial(t *testing.T) {
	p, _ := hex.DecodeString("1101" + "0000" + "0600")
	p = append(p, []byte("ABC123")...)

	sn, err := parseSerial(p)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if sn == nil || *sn != "ABC123" {
		t.Errorf("expected serial ABC123, got %v", sn)
	}
}

// TestParseSerial_FailureStatus 失败状态不返回值也不报错，留待重查
func TestParseSerial_FailureStatus(t *testing.T) {
	p, _ := hex.DecodeString("1101" + "0100" + "0600")

	sn, err := parseSerial(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sn != nil {
		t.Errorf("expected nil serial on failure status, got %q", *sn)
	}
}

// TestParseSerial_Truncated 声明长度超出实际字节按畸形响应处理
func TestParseSerial_Truncated(t *testing.T) {
	p, _ := hex.DecodeString("1101" + "0000" + "1000" + "4142")

	_, err := parseSerial(p)
	var fault *ProtocolFault
	if !errors.As(err, &fault) {
		t.Fatalf("expected ProtocolFault, got %v", err)
	}
}

// TestParseParams 六项参数按请求顺序解码
func TestParseParams(t *testing.T) {
	p, _ := hex.DecodeString("7101" + "0000" +
		"08000000" + // 状态上报频率 raw 8 = 4Hz
		"0a000000" + // 距离上报频率 raw 10 = 5Hz
		"08000000" + // 最远距离门 8
		"01000000" + // 最近距离门 1
		"1e000000" + // 无人延迟 30s
		"05000000") // 响应速度 normal

	params, err := parseParams(p)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if params.StatusFreq != 8 {
		t.Errorf("expected status freq 8, got %d", params.StatusFreq)
	}
	if params.DistanceFreq != 10 {
		t.Errorf("expected distance freq 10, got %d", params.DistanceFreq)
	}
	if params.MaxGate != 8 || params.MinGate != 1 {
		t.Errorf("expected gates 8/1, got %d/%d", params.MaxGate, params.MinGate)
	}
	if params.Unattended != 30 {
		t.Errorf("expected unattended 30, got %d", params.Unattended)
	}
	if params.RespSpeed != 5 {
		t.Errorf("expected response speed 5, got %d", params.RespSpeed)
	}
}

// TestParseParams_ShortBody 成功状态但不足28字节按畸形响应处理
func TestParseParams_ShortBody(t *testing.T) {
	p, _ := hex.DecodeString("7101" + "0000" + "08000000" + "0a000000")

	_, err := parseParams(p)
	var fault *ProtocolFault
	if !errors.As(err, &fault) {
		t.Fatalf("expected ProtocolFault, got %v", err)
	}
}

// TestParseParams_FailureStatus 失败状态不返回值也不报错
func TestParseParams_FailureStatus(t *testing.T) {
	p, _ := hex.DecodeString("7101" + "0200")

	params, err := parseParams(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params != nil {
		t.Errorf("expected nil params on failure status, got %+v", params)
	}
}

// TestFactsAccessors 换算访问器：原始值未知时显式返回未知
func TestFactsAccessors(t *testing.T) {
	var facts DeviceFacts

	if _, ok := facts.StatusFrequencyHz(); ok {
		t.Error("expected unknown status frequency before params are set")
	}
	if _, ok := facts.MaxDistanceMetres(); ok {
		t.Error("expected unknown max distance before params are set")
	}
	if _, ok := facts.ResponseSpeed(); ok {
		t.Error("expected unknown response speed before params are set")
	}

	facts.Params = &Params{StatusFreq: 8, DistanceFreq: 10, MaxGate: 8, MinGate: 1, Unattended: 30, RespSpeed: 10}

	if hz, ok := facts.StatusFrequencyHz(); !ok || hz != 4.0 {
		t.Errorf("expected 4.0Hz, got %v ok=%v", hz, ok)
	}
	if hz, ok := facts.DistanceFrequencyHz(); !ok || hz != 5.0 {
		t.Errorf("expected 5.0Hz, got %v ok=%v", hz, ok)
	}
	if m, ok := facts.MaxDistanceMetres(); !ok || m != 5.6 {
		t.Errorf("expected 5.6m, got %v ok=%v", m, ok)
	}
	if s, ok := facts.ResponseSpeed(); !ok || s != "fast" {
		t.Errorf("expected fast, got %q ok=%v", s, ok)
	}
}
