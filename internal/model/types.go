package model

// CheckInType 打卡类型枚举，三个通道互相独立
type CheckInType string

const (
	TypeConstruction CheckInType = "construction" // 施工打卡
	TypeTravel       CheckInType = "travel"       // 在途打卡
	TypeStop         CheckInType = "stop"         // 停工打卡
)

// AllTypes 固定顺序，状态查询按此遍历
var AllTypes = []CheckInType{TypeConstruction, TypeTravel, TypeStop}

// IsValidType 校验打卡类型取值
func IsValidType(typ string) bool {
	switch CheckInType(typ) {
	case TypeConstruction, TypeTravel, TypeStop:
		return true
	}
	return false
}

// TravelSubType 在途打卡子类型
type TravelSubType string

const (
	SubTypeDeparture  TravelSubType = "departure"  // 出发
	SubTypeArrival    TravelSubType = "arrival"    // 到达
	SubTypeReturn     TravelSubType = "return"     // 返程
	SubTypeBackToNing TravelSubType = "backToNing" // 到宁
)

// CheckInStatus 打卡状态枚举
type CheckInStatus string

const (
	StatusCheckedIn  CheckInStatus = "checked_in"  // 已签到
	StatusCheckedOut CheckInStatus = "checked_out" // 已签退
)

var typeLabels = map[string]string{
	string(TypeConstruction): "施工打卡",
	string(TypeTravel):       "在途打卡",
	string(TypeStop):         "停工打卡",
}

var subTypeLabels = map[string]string{
	string(SubTypeDeparture):  "出发",
	string(SubTypeArrival):    "到达",
	string(SubTypeReturn):     "返程",
	string(SubTypeBackToNing): "到宁",
}

// TypeLabel 返回打卡类型的中文标签，未知类型原样返回
func TypeLabel(typ string) string {
	if label, ok := typeLabels[typ]; ok {
		return label
	}
	return typ
}

// FullTypeLabel 返回含在途子类型的完整标签，导出与统计展示用，
// 格式固定为 "在途打卡（出发）"，客户端按此解析
func FullTypeLabel(typ, subType string) string {
	label := TypeLabel(typ)
	if typ == string(TypeTravel) && subType != "" {
		sub, ok := subTypeLabels[subType]
		if !ok {
			sub = subType
		}
		label += "（" + sub + "）"
	}
	return label
}
