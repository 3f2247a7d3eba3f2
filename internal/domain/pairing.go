package domain

// PairingResult: 一次最优配对搜索的结果
// 每次搜索都会生成新的结果，搜索过程中只替换不修改
type PairingResult struct {
	Father *Chocobo `json:"father"`
	Mother *Chocobo `json:"mother"`
	Score  float64  `json:"score"`
}
