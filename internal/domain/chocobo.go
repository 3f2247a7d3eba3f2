package domain

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "公"
	GenderFemale Gender = "母"
)

// StatPair: 某一项能力值的两个遗传位，分别来自这只陆行鸟的父亲和母亲
type StatPair struct {
	Sire int `json:"sire"`
	Dam  int `json:"dam"`
}

// 能力值的固定顺序，枚举和排序都依赖这个顺序
const (
	StatMaxSpeed = iota
	StatStamina
	StatCunning
	StatAcceleration
	StatEndurance

	StatCount
)

type Chocobo struct {
	ID                int64      `json:"id"`
	OwnerID           int64      `json:"ownerID"`
	Name              string     `json:"name"`
	Gender            Gender     `json:"gender"`
	MaxSpeed          StatPair   `json:"maxSpeed"`
	Stamina           StatPair   `json:"stamina"`
	Cunning           StatPair   `json:"cunning"`
	Acceleration      StatPair   `json:"acceleration"`
	Endurance         StatPair   `json:"endurance"`
	AttemptsRemaining int32      `json:"attemptsRemaining"`
	Abilities         []Ability  `json:"abilities"`
	CreatedAt         time.Time  `json:"createdAt"`
	Version           int32      `json:"-"`
}

// StatPairs 按固定顺序返回五项能力值的遗传位
func (c *Chocobo) StatPairs() [StatCount]StatPair {
	return [StatCount]StatPair{
		StatMaxSpeed:     c.MaxSpeed,
		StatStamina:      c.Stamina,
		StatCunning:      c.Cunning,
		StatAcceleration: c.Acceleration,
		StatEndurance:    c.Endurance,
	}
}
