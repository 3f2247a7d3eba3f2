package breeding

import (
	"errors"
	"reflect"
	"testing"

	"github.com/zacmccul/chocobo-breeding-calculator/internal/domain"
)

// uniformChocobo 生成一只所有遗传位都是同一个值的陆行鸟
func uniformChocobo(name string, gender domain.Gender, allele int, attempts int32) *domain.Chocobo {
	pair := domain.StatPair{Sire: allele, Dam: allele}
	return &domain.Chocobo{
		Name:              name,
		Gender:            gender,
		MaxSpeed:          pair,
		Stamina:           pair,
		Cunning:           pair,
		Acceleration:      pair,
		Endurance:         pair,
		AttemptsRemaining: attempts,
	}
}

func mixedFather() *domain.Chocobo {
	return &domain.Chocobo{
		Name:              "父本",
		Gender:            domain.GenderMale,
		MaxSpeed:          domain.StatPair{Sire: 5, Dam: 3},
		Stamina:           domain.StatPair{Sire: 4, Dam: 2},
		Cunning:           domain.StatPair{Sire: 1, Dam: 3},
		Acceleration:      domain.StatPair{Sire: 2, Dam: 5},
		Endurance:         domain.StatPair{Sire: 3, Dam: 4},
		AttemptsRemaining: 5,
	}
}

func mixedMother() *domain.Chocobo {
	return &domain.Chocobo{
		Name:              "母本",
		Gender:            domain.GenderFemale,
		MaxSpeed:          domain.StatPair{Sire: 2, Dam: 4},
		Stamina:           domain.StatPair{Sire: 5, Dam: 1},
		Cunning:           domain.StatPair{Sire: 3, Dam: 2},
		Acceleration:      domain.StatPair{Sire: 1, Dam: 4},
		Endurance:         domain.StatPair{Sire: 5, Dam: 2},
		AttemptsRemaining: 7,
	}
}

func TestNewRejectsInvalidStatMax(t *testing.T) {
	for _, statMax := range []int{0, 1, 3, 6, -5} {
		if _, err := New(statMax, false); err == nil {
			t.Errorf("statMax = %d 时 New 应该返回错误", statMax)
		}
	}
	for _, statMax := range []int{4, 5} {
		if _, err := New(statMax, false); err != nil {
			t.Errorf("statMax = %d 时 New 返回了错误: %v", statMax, err)
		}
	}
}

func TestEnumerateSpaceSize(t *testing.T) {
	genotypes := enumerate(mixedFather(), mixedMother())
	if len(genotypes) != 1024 {
		t.Fatalf("基因型空间的大小应该恒为 1024，实际为 %d", len(genotypes))
	}

	// 枚举顺序必须是确定的
	again := enumerate(mixedFather(), mixedMother())
	for i := range genotypes {
		if genotypes[i] != again[i] {
			t.Fatalf("两次枚举在第 %d 个基因型处不一致", i)
		}
	}
}

func TestEnumerateCombinationBalance(t *testing.T) {
	father := mixedFather()
	mother := mixedMother()
	genotypes := enumerate(father, mother)

	// 每项能力值的 4 种继承组合在 1024 个基因型中各出现 256 次
	for s := 0; s < domain.StatCount; s++ {
		counts := make(map[domain.StatPair]int)
		for _, g := range genotypes {
			counts[g[s]]++
		}

		total := 0
		for _, c := range counts {
			if c%256 != 0 {
				t.Fatalf("第 %d 项能力值的组合出现次数 %d 不是 256 的倍数", s, c)
			}
			total += c
		}
		if total != 1024 {
			t.Fatalf("第 %d 项能力值的组合总数应该为 1024，实际为 %d", s, total)
		}
	}
}

func TestCompareCriteriaOrder(t *testing.T) {
	e, err := New(5, false)
	if err != nil {
		t.Fatal(err)
	}

	low := domain.StatPair{Sire: 1, Dam: 1}

	// a 没有任何满值遗传位但赛跑公式很高，b 有一个满值遗传位
	var a, b Genotype
	for s := range a {
		a[s] = domain.StatPair{Sire: 4, Dam: 4}
		b[s] = low
	}
	b[domain.StatMaxSpeed] = domain.StatPair{Sire: 5, Dam: 1}

	if e.compare(a, b) >= 0 {
		t.Error("拥有满值遗传位的能力值数量应该优先于赛跑公式")
	}

	// c 和 d 的满值能力值数量相同，但 d 有一项是锁定的
	var c, d Genotype
	for s := range c {
		c[s] = low
		d[s] = low
	}
	c[domain.StatMaxSpeed] = domain.StatPair{Sire: 5, Dam: 4}
	d[domain.StatMaxSpeed] = domain.StatPair{Sire: 5, Dam: 5}

	if e.compare(c, d) >= 0 {
		t.Error("锁定的能力值数量应该优先于赛跑公式")
	}

	// 前两个判据都平局时由赛跑公式决定
	var f, g Genotype
	for s := range f {
		f[s] = low
		g[s] = low
	}
	f[domain.StatStamina] = domain.StatPair{Sire: 3, Dam: 3}
	g[domain.StatStamina] = domain.StatPair{Sire: 4, Dam: 4}

	if e.compare(f, g) >= 0 {
		t.Error("赛跑公式更高的基因型应该更好")
	}

	// 完全相同的基因型应该相等
	if e.compare(f, f) != 0 {
		t.Error("基因型与自身比较应该相等")
	}
}

func TestCompareSuperSprintMode(t *testing.T) {
	normal, _ := New(5, false)
	sprint, _ := New(5, true)

	low := domain.StatPair{Sire: 1, Dam: 1}

	// a 的最高速度高，b 的持久力高
	var a, b Genotype
	for s := range a {
		a[s] = low
		b[s] = low
	}
	a[domain.StatMaxSpeed] = domain.StatPair{Sire: 4, Dam: 4}
	b[domain.StatEndurance] = domain.StatPair{Sire: 4, Dam: 4}

	// 普通模式看最高速度，超级短跑模式看持久力
	if normal.compare(a, b) <= 0 {
		t.Error("普通模式下最高速度应该参与赛跑公式")
	}
	if sprint.compare(a, b) >= 0 {
		t.Error("超级短跑模式下持久力应该参与赛跑公式")
	}
}

func TestScorePerfection(t *testing.T) {
	e, err := New(5, false)
	if err != nil {
		t.Fatal(err)
	}

	// 双亲全部锁定时所有后代并列最优，任何繁殖次数下期望名次都是 1023
	for _, attempts := range []int32{1, 3, 9} {
		father := uniformChocobo("满值公鸟", domain.GenderMale, 5, attempts)
		mother := uniformChocobo("满值母鸟", domain.GenderFemale, 5, attempts)

		score, err := e.Score(father, mother)
		if err != nil {
			t.Fatal(err)
		}
		if score != 1023 {
			t.Errorf("attempts = %d 时满值双亲的评分应该为 1023，实际为 %v", attempts, score)
		}
	}
}

func TestScoreFullyTiedSpace(t *testing.T) {
	e, _ := New(5, false)

	// 双亲所有遗传位相同（即便都是最低值）时，1024 个后代全部并列，
	// 此时整个空间只有一个名次段，评分为该空间自身的上限
	father := uniformChocobo("全一公鸟", domain.GenderMale, 1, 9)
	mother := uniformChocobo("全一母鸟", domain.GenderFemale, 1, 9)

	score, err := e.Score(father, mother)
	if err != nil {
		t.Fatal(err)
	}
	if score != 1023 {
		t.Errorf("完全并列的基因型空间评分应该为 1023，实际为 %v", score)
	}
}

func TestScoreZeroAttempts(t *testing.T) {
	e, _ := New(5, false)

	cases := []struct {
		fatherAttempts int32
		motherAttempts int32
	}{
		{0, 9},
		{9, 0},
		{0, 0},
		{-1, 9}, // 负数按 0 处理
	}

	for _, c := range cases {
		father := mixedFather()
		mother := mixedMother()
		father.AttemptsRemaining = c.fatherAttempts
		mother.AttemptsRemaining = c.motherAttempts

		score, err := e.Score(father, mother)
		if err != nil {
			t.Fatal(err)
		}
		if score != 0 {
			t.Errorf("attempts = (%d, %d) 时评分应该为 0，实际为 %v", c.fatherAttempts, c.motherAttempts, score)
		}
	}
}

func TestScoreMonotonicInSiblings(t *testing.T) {
	e, _ := New(5, false)

	prev := -1.0
	for attempts := int32(1); attempts <= 9; attempts++ {
		father := mixedFather()
		mother := mixedMother()
		father.AttemptsRemaining = attempts
		mother.AttemptsRemaining = attempts

		score, err := e.Score(father, mother)
		if err != nil {
			t.Fatal(err)
		}
		if score <= prev {
			t.Errorf("attempts 从 %d 增加到 %d 时评分没有增加: %v -> %v", attempts-1, attempts, prev, score)
		}
		prev = score
	}
}

func TestScoreAttemptsSymmetry(t *testing.T) {
	e, _ := New(5, false)

	father := mixedFather()
	mother := mixedMother()
	father.AttemptsRemaining = 3
	mother.AttemptsRemaining = 8

	scoreA, err := e.Score(father, mother)
	if err != nil {
		t.Fatal(err)
	}

	// 交换双方的剩余繁殖次数不影响评分，因为只有较小值参与计算
	father.AttemptsRemaining, mother.AttemptsRemaining = 8, 3
	scoreB, err := e.Score(father, mother)
	if err != nil {
		t.Fatal(err)
	}

	if scoreA != scoreB {
		t.Errorf("交换剩余繁殖次数后评分不一致: %v != %v", scoreA, scoreB)
	}
}

func TestScoreParentRoleSymmetry(t *testing.T) {
	e, _ := New(5, false)

	scoreA, err := e.Score(mixedFather(), mixedMother())
	if err != nil {
		t.Fatal(err)
	}

	// 排名公式对双亲的角色是对称的，交换父母得到相同的评分
	scoreB, err := e.Score(mixedMother(), mixedFather())
	if err != nil {
		t.Fatal(err)
	}

	if scoreA != scoreB {
		t.Errorf("交换父母后评分不一致: %v != %v", scoreA, scoreB)
	}
}

func TestScoreRejectsInvalidStatValue(t *testing.T) {
	e, _ := New(5, false)

	father := mixedFather()
	father.Stamina.Dam = 6

	if _, err := e.Score(father, mixedMother()); !errors.Is(err, ErrInvalidStatValue) {
		t.Errorf("超出范围的能力值应该返回 ErrInvalidStatValue，实际为 %v", err)
	}

	e4, _ := New(4, false)
	if _, err := e4.Score(mixedFather(), mixedMother()); !errors.Is(err, ErrInvalidStatValue) {
		t.Errorf("statMax = 4 时值为 5 的能力值应该返回 ErrInvalidStatValue，实际为 %v", err)
	}
}

func TestExpectedBestRankSingleDraw(t *testing.T) {
	e, _ := New(5, false)

	// 构造一个没有任何平局的名次空间：赛跑公式严格递增
	sorted := make([]Genotype, 1024)
	for i := range sorted {
		sorted[i][domain.StatMaxSpeed] = domain.StatPair{Sire: i, Dam: i}
	}

	// 只抽取一次时期望名次就是 0..1023 的均值
	if got := e.expectedBestRank(sorted, 1); got != 511.5 {
		t.Errorf("无平局空间抽取一次的期望名次应该为 511.5，实际为 %v", got)
	}
}

func TestExpectedBestRankSmallSpace(t *testing.T) {
	e, _ := New(5, false)

	// 4 个互不相同的名次，抽取 2 次
	// P(max=i) = ((i+1)/4)^2 - (i/4)^2，期望 = (0*1 + 1*3 + 2*5 + 3*7) / 16
	sorted := make([]Genotype, 4)
	for i := range sorted {
		sorted[i][domain.StatMaxSpeed] = domain.StatPair{Sire: i, Dam: i}
	}

	want := float64(0*1+1*3+2*5+3*7) / 16
	if got := e.expectedBestRank(sorted, 2); got != want {
		t.Errorf("期望名次应该为 %v，实际为 %v", want, got)
	}
}

func TestFindBestPairingPicksPerfectPair(t *testing.T) {
	e, _ := New(5, false)

	// 每个性别三只，其中只有一对是全满值的
	chocobos := []*domain.Chocobo{
		uniformChocobo("普通公鸟一", domain.GenderMale, 2, 9),
		uniformChocobo("满值公鸟", domain.GenderMale, 5, 9),
		mixedFather(),
		uniformChocobo("普通母鸟一", domain.GenderFemale, 3, 9),
		mixedMother(),
		uniformChocobo("满值母鸟", domain.GenderFemale, 5, 9),
	}

	result, err := e.FindBestPairing(chocobos)
	if err != nil {
		t.Fatal(err)
	}
	if result == nil {
		t.Fatal("存在可行配对时不应该返回 nil")
	}
	if result.Father.Name != "满值公鸟" || result.Mother.Name != "满值母鸟" {
		t.Errorf("应该选出全满值配对，实际为 (%s, %s)", result.Father.Name, result.Mother.Name)
	}
	if result.Score != 1023 {
		t.Errorf("全满值配对的评分应该为 1023，实际为 %v", result.Score)
	}
}

func TestFindBestPairingEmptyPartition(t *testing.T) {
	e, _ := New(5, false)

	cases := [][]*domain.Chocobo{
		nil,
		{uniformChocobo("孤鸟", domain.GenderMale, 3, 5)},
		{
			uniformChocobo("母鸟一", domain.GenderFemale, 3, 5),
			uniformChocobo("母鸟二", domain.GenderFemale, 4, 5),
		},
	}

	for i, chocobos := range cases {
		result, err := e.FindBestPairing(chocobos)
		if err != nil {
			t.Fatal(err)
		}
		if result != nil {
			t.Errorf("用例 %d: 缺少任一性别时应该返回 nil，实际为 %+v", i, result)
		}
	}
}

func TestFindBestPairingAllZeroAttempts(t *testing.T) {
	e, _ := New(5, false)

	// 所有配对都没有剩余繁殖次数时仍然返回一个配对，评分为 0
	chocobos := []*domain.Chocobo{
		uniformChocobo("公鸟", domain.GenderMale, 4, 0),
		uniformChocobo("母鸟", domain.GenderFemale, 4, 0),
	}

	result, err := e.FindBestPairing(chocobos)
	if err != nil {
		t.Fatal(err)
	}
	if result == nil {
		t.Fatal("存在可行配对时不应该返回 nil")
	}
	if result.Score != 0 {
		t.Errorf("没有剩余繁殖次数的配对评分应该为 0，实际为 %v", result.Score)
	}
}

func TestFindBestPairingDoesNotMutateInputs(t *testing.T) {
	e, _ := New(5, false)

	father := mixedFather()
	mother := mixedMother()
	fatherCopy := *father
	motherCopy := *mother

	if _, err := e.FindBestPairing([]*domain.Chocobo{father, mother}); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(*father, fatherCopy) || !reflect.DeepEqual(*mother, motherCopy) {
		t.Error("搜索过程修改了传入的陆行鸟")
	}
}
