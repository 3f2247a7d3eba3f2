package utils

import (
	"testing"

	"github.com/zacmccul/chocobo-breeding-calculator/internal/domain"
)

func validChocobo() *domain.Chocobo {
	pair := domain.StatPair{Sire: 3, Dam: 4}
	return &domain.Chocobo{
		Name:              "小风",
		Gender:            domain.GenderMale,
		MaxSpeed:          pair,
		Stamina:           pair,
		Cunning:           pair,
		Acceleration:      pair,
		Endurance:         pair,
		AttemptsRemaining: 5,
		Abilities:         []domain.Ability{domain.AbilitySprint},
	}
}

func TestValidateChocobo(t *testing.T) {
	if err := ValidateChocobo(validChocobo(), 5); err != nil {
		t.Errorf("合法的陆行鸟不应该校验失败: %v", err)
	}

	cases := []struct {
		name   string
		modify func(c *domain.Chocobo)
	}{
		{"性别非法", func(c *domain.Chocobo) { c.Gender = "未知" }},
		{"能力值过低", func(c *domain.Chocobo) { c.Stamina.Sire = 0 }},
		{"能力值过高", func(c *domain.Chocobo) { c.Endurance.Dam = 6 }},
		{"繁殖次数为负", func(c *domain.Chocobo) { c.AttemptsRemaining = -1 }},
		{"繁殖次数过大", func(c *domain.Chocobo) { c.AttemptsRemaining = 11 }},
		{"未知能力", func(c *domain.Chocobo) { c.Abilities = []domain.Ability{"飞天"} }},
		{"能力重复", func(c *domain.Chocobo) {
			c.Abilities = []domain.Ability{domain.AbilityDash, domain.AbilityDash}
		}},
	}

	for _, tc := range cases {
		c := validChocobo()
		tc.modify(c)
		if err := ValidateChocobo(c, 5); err == nil {
			t.Errorf("用例 %q 应该校验失败", tc.name)
		}
	}
}

func TestValidateChocoboStatMaxFour(t *testing.T) {
	c := validChocobo()
	c.MaxSpeed = domain.StatPair{Sire: 5, Dam: 4}

	if err := ValidateChocobo(c, 5); err != nil {
		t.Errorf("statMax = 5 时值为 5 的能力值应该合法: %v", err)
	}
	if err := ValidateChocobo(c, 4); err == nil {
		t.Error("statMax = 4 时值为 5 的能力值应该校验失败")
	}
}

func TestGenerateRandomChocoboIsValid(t *testing.T) {
	// 随机生成的陆行鸟必须能通过校验，否则种子数据会污染数据库
	for i := 0; i < 100; i++ {
		c := GenerateRandomChocobo(1, 5)
		if err := ValidateChocobo(c, 5); err != nil {
			t.Fatalf("随机生成的陆行鸟校验失败: %v", err)
		}
	}
	for i := 0; i < 100; i++ {
		c := GenerateRandomChocobo(1, 4)
		if err := ValidateChocobo(c, 4); err != nil {
			t.Fatalf("statMax = 4 时随机生成的陆行鸟校验失败: %v", err)
		}
	}
}
