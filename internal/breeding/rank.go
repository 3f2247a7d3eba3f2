package breeding

import (
	"cmp"

	"github.com/zacmccul/chocobo-breeding-calculator/internal/domain"
)

/**
 * 基因型的优劣比较，依次应用三个判据，前一个判据平局时才看下一个：
 * 		1. 拥有至少一个满值遗传位的能力值数量（没有满值遗传位的能力值永远无法锁定，
 * 		   这样的基因型不管其他能力值多高都是更差的种鸟）
 * 		2. 锁定（两个遗传位都是满值）的能力值数量
 * 		3. 赛跑公式（按每项能力值两个遗传位的平均值计算），公式平局时再比一个次要项
 * 三个判据都平局则视为相等，此时顺序由稳定排序保持的枚举顺序决定
 */

// compare 比较两个基因型的优劣
// a 更差返回负数，a 更好返回正数，相等返回 0，即按质量升序的自然顺序
func (e *Evaluator) compare(a, b Genotype) int {
	if c := cmp.Compare(e.countStatsWithMaxAllele(a), e.countStatsWithMaxAllele(b)); c != 0 {
		return c
	}
	if c := cmp.Compare(e.countLockedStats(a), e.countLockedStats(b)); c != 0 {
		return c
	}
	if c := cmp.Compare(e.racingScore(a), e.racingScore(b)); c != 0 {
		return c
	}
	return cmp.Compare(e.racingTiebreak(a), e.racingTiebreak(b))
}

// countStatsWithMaxAllele 统计至少有一个满值遗传位的能力值数量
func (e *Evaluator) countStatsWithMaxAllele(g Genotype) int {
	count := 0
	for _, pair := range g {
		if pair.Sire == e.statMax || pair.Dam == e.statMax {
			count++
		}
	}
	return count
}

// countLockedStats 统计锁定的能力值数量
// 锁定指两个遗传位都是满值，后代必定继承满值
func (e *Evaluator) countLockedStats(g Genotype) int {
	count := 0
	for _, pair := range g {
		if pair.Sire == e.statMax && pair.Dam == e.statMax {
			count++
		}
	}
	return count
}

func statAverage(pair domain.StatPair) float64 {
	return float64(pair.Sire+pair.Dam) / 2
}

// racingScore 计算赛跑公式
// 普通模式：最高速度 + 耐力 - 灵巧 - 加速度
// 超级短跑模式：耐力 + 持久力 - 灵巧 - 加速度
func (e *Evaluator) racingScore(g Genotype) float64 {
	if e.superSprint {
		return statAverage(g[domain.StatStamina]) + statAverage(g[domain.StatEndurance]) -
			statAverage(g[domain.StatCunning]) - statAverage(g[domain.StatAcceleration])
	}
	return statAverage(g[domain.StatMaxSpeed]) + statAverage(g[domain.StatStamina]) -
		statAverage(g[domain.StatCunning]) - statAverage(g[domain.StatAcceleration])
}

// racingTiebreak 赛跑公式平局时的次要比较项
// 普通模式比持久力，超级短跑模式比最高速度
func (e *Evaluator) racingTiebreak(g Genotype) float64 {
	if e.superSprint {
		return statAverage(g[domain.StatMaxSpeed])
	}
	return statAverage(g[domain.StatEndurance])
}
