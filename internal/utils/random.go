package utils

import (
	"math/rand"

	"github.com/mozillazg/go-pinyin"
	"github.com/zacmccul/chocobo-breeding-calculator/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         domain.RoleBreeder,
	}

	return user, nil
}

var chocoboNamePrefixes = []string{
	"小", "阿", "大", "老", "金", "银", "黑", "白", "红", "蓝",
}
var chocoboNameCharacters = []string{
	"风", "云", "雷", "电", "影", "光", "羽", "翼", "星", "月",
	"虹", "霜", "焰", "岚", "岩", "浪", "沙", "雪", "霞", "雾",
}

func GenerateRandomChocoboName() string {
	prefix := chocoboNamePrefixes[rand.Intn(len(chocoboNamePrefixes))]
	return prefix + chocoboNameCharacters[rand.Intn(len(chocoboNameCharacters))]
}

func randomStatPair(statMax int) domain.StatPair {
	return domain.StatPair{
		Sire: rand.Intn(statMax) + 1,
		Dam:  rand.Intn(statMax) + 1,
	}
}

// GenerateRandomAbilities 随机选出一个不重复的能力子集（可能为空）
func GenerateRandomAbilities() []domain.Ability {
	abilities := append([]domain.Ability{}, domain.AllAbilities...)

	for i := len(abilities) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		abilities[i], abilities[j] = abilities[j], abilities[i]
	}

	n := rand.Intn(len(abilities) + 1)
	return abilities[:n]
}

func GenerateRandomChocobo(ownerID int64, statMax int) *domain.Chocobo {
	gender := domain.GenderMale
	if rand.Intn(2) == 0 {
		gender = domain.GenderFemale
	}

	return &domain.Chocobo{
		OwnerID:           ownerID,
		Name:              GenerateRandomChocoboName(),
		Gender:            gender,
		MaxSpeed:          randomStatPair(statMax),
		Stamina:           randomStatPair(statMax),
		Cunning:           randomStatPair(statMax),
		Acceleration:      randomStatPair(statMax),
		Endurance:         randomStatPair(statMax),
		AttemptsRemaining: int32(rand.Intn(MaxAttemptsRemaining + 1)),
		Abilities:         GenerateRandomAbilities(),
	}
}
