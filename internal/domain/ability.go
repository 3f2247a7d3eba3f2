package domain

// Ability: 陆行鸟的特殊能力
// 能力只作为附加属性参与增删改查，配对评分不会读取它
type Ability string

const (
	AbilityChocoCure  Ability = "超级治愈"
	AbilityChocoEsuna Ability = "超级康复"
	AbilityChocoRegen Ability = "超级再生"
	AbilitySprint     Ability = "冲刺"
	AbilityDash       Ability = "疾走"
)

// AllAbilities: 当前版本允许的能力全集
var AllAbilities = []Ability{
	AbilityChocoCure,
	AbilityChocoEsuna,
	AbilityChocoRegen,
	AbilitySprint,
	AbilityDash,
}
