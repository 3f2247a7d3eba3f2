package utils

import (
	"fmt"
	"slices"

	"github.com/zacmccul/chocobo-breeding-calculator/internal/domain"
)

// 每只陆行鸟剩余繁殖次数的上限（游戏设定）
const MaxAttemptsRemaining = 10

// ValidateChocobo 检查一只陆行鸟的数据是否合法
// 评分核心假设数据已经通过这里的校验，所以所有入口都必须先调用这个函数
func ValidateChocobo(c *domain.Chocobo, statMax int) error {
	if c.Gender != domain.GenderMale && c.Gender != domain.GenderFemale {
		return fmt.Errorf("陆行鸟 %q 的性别 %q 非法", c.Name, c.Gender)
	}

	for i, pair := range c.StatPairs() {
		if pair.Sire < 1 || pair.Sire > statMax || pair.Dam < 1 || pair.Dam > statMax {
			return fmt.Errorf("陆行鸟 %q 的第 %d 项能力值必须在 1 到 %d 之间", c.Name, i+1, statMax)
		}
	}

	if c.AttemptsRemaining < 0 || c.AttemptsRemaining > MaxAttemptsRemaining {
		return fmt.Errorf("陆行鸟 %q 的剩余繁殖次数必须在 0 到 %d 之间", c.Name, MaxAttemptsRemaining)
	}

	return ValidateAbilities(c.Abilities)
}

// ValidateAbilities 检查能力列表是否都在当前版本允许的全集中且没有重复
func ValidateAbilities(abilities []domain.Ability) error {
	seen := make(map[domain.Ability]bool)
	for _, ability := range abilities {
		if !slices.Contains(domain.AllAbilities, ability) {
			return fmt.Errorf("未知的能力 %q", ability)
		}
		if seen[ability] {
			return fmt.Errorf("能力 %q 重复", ability)
		}
		seen[ability] = true
	}
	return nil
}
