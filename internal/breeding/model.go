package breeding

import (
	"errors"

	"github.com/zacmccul/chocobo-breeding-calculator/internal/domain"
)

// Genotype: 一只假想后代的完整基因型
// 每项能力值的 Sire 继承自父亲的遗传位，Dam 继承自母亲的遗传位
type Genotype [domain.StatCount]domain.StatPair

// 基因型空间的大小，每项能力值有 4 种继承组合，共 5 项能力值
const genotypeSpaceSize = 1 << (2 * domain.StatCount)

// 每对陆行鸟最多可以繁殖的次数（游戏上限）
const maxSiblingsPerPair = 9

// ErrInvalidStatValue 表示传入的能力值超出了允许的范围
// 能力值应该在上游就校验完毕，这个错误属于防御性检查
var ErrInvalidStatValue = errors.New("能力值超出允许范围")

// Evaluator 负责配对评分和最优配对搜索
// statMax 和 superSprint 在构造时固定，一次排序或搜索过程中不允许变化
type Evaluator struct {
	statMax     int
	superSprint bool
}

// New 创建一个配对评估器
// statMax 是能力值的上限，不同版本的游戏数据取 4 或 5
// superSprint 为 true 时采用超级短跑的赛跑公式
func New(statMax int, superSprint bool) (*Evaluator, error) {
	if statMax != 4 && statMax != 5 {
		return nil, errors.New("能力值上限只能是 4 或 5")
	}

	return &Evaluator{
		statMax:     statMax,
		superSprint: superSprint,
	}, nil
}
