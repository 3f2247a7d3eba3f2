package breeding

import (
	"fmt"
	"math"
	"slices"

	"github.com/zacmccul/chocobo-breeding-calculator/internal/domain"
)

/**
 * 配对评分
 * score = E[max(X_1, ..., X_s)]
 * 其中:
 * 		1. X_i 为从 1024 个基因型中等概率抽取一个所得到的名次（0 为最差，1023 为最好）
 * 		2. s 为这对父母实际还能繁殖的后代数量
 * 也就是说，评分是"繁殖 s 次并只保留最好的后代"时，最好后代名次的期望值
 * 优劣相同的基因型共享同一个名次（取该平局段在排序后的最高下标），
 * 否则名次分布永远是 0..1023 的均匀分布，评分就和基因完全无关了
 */

// Score 计算一对陆行鸟的配对评分
// 纯函数，不修改传入的陆行鸟
func (e *Evaluator) Score(father, mother *domain.Chocobo) (float64, error) {
	if err := e.checkStats(father); err != nil {
		return 0, err
	}
	if err := e.checkStats(mother); err != nil {
		return 0, err
	}

	siblings := min(int(father.AttemptsRemaining), int(mother.AttemptsRemaining), maxSiblingsPerPair)
	if siblings <= 0 {
		// 父母任意一方没有剩余繁殖次数时无法得到后代，评分为 0
		return 0, nil
	}

	// 枚举基因型空间并按质量从差到好稳定排序
	genotypes := enumerate(father, mother)
	slices.SortStableFunc(genotypes, e.compare)

	return e.expectedBestRank(genotypes, siblings), nil
}

// expectedBestRank 计算独立等概率抽取 siblings 次后最好名次的期望值
// 逐段扫描排序后的平局段，每段的名次为段内最高下标 j，
// P(最好的后代落在前 j+1 个基因型中) = ((j+1)/n)^siblings，
// 相邻两段的概率差就是最好后代恰好落在这一段的概率
func (e *Evaluator) expectedBestRank(sorted []Genotype, siblings int) float64 {
	n := len(sorted)
	score := 0.0
	prev := 0.0

	for i := 0; i < n; {
		// 找到当前平局段的结尾
		j := i
		for j+1 < n && e.compare(sorted[j], sorted[j+1]) == 0 {
			j++
		}

		cur := math.Pow(float64(j+1)/float64(n), float64(siblings))
		score += float64(j) * (cur - prev)
		prev = cur

		i = j + 1
	}

	return score
}

// checkStats 防御性检查陆行鸟的能力值是否都在允许范围内
// 正常情况下能力值在上游就已经校验过了
func (e *Evaluator) checkStats(c *domain.Chocobo) error {
	for s, pair := range c.StatPairs() {
		if pair.Sire < 1 || pair.Sire > e.statMax || pair.Dam < 1 || pair.Dam > e.statMax {
			return fmt.Errorf("陆行鸟 %q 的第 %d 项能力值非法: %w", c.Name, s+1, ErrInvalidStatValue)
		}
	}
	return nil
}
