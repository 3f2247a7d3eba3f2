package breeding

import (
	"github.com/zacmccul/chocobo-breeding-calculator/internal/domain"
)

// enumerate 展开一对父母所有可能的后代基因型
// 每项能力值独立地从父亲的两个遗传位中取一个、从母亲的两个遗传位中取一个，
// 共 4 种组合，5 项能力值的笛卡尔积一共 1024 种基因型
// 顺序是确定的：把每项能力值的 4 种选择看作一个四进制位，第一项能力值为最高位
func enumerate(father, mother *domain.Chocobo) []Genotype {
	fatherPairs := father.StatPairs()
	motherPairs := mother.StatPairs()

	genotypes := make([]Genotype, 0, genotypeSpaceSize)

	for i := 0; i < genotypeSpaceSize; i++ {
		var g Genotype

		for s := 0; s < domain.StatCount; s++ {
			// 取出第 s 项能力值对应的四进制位
			choice := (i >> (2 * (domain.StatCount - 1 - s))) & 3

			// 高位决定取父亲的哪个遗传位，低位决定取母亲的哪个遗传位
			if choice&2 == 0 {
				g[s].Sire = fatherPairs[s].Sire
			} else {
				g[s].Sire = fatherPairs[s].Dam
			}
			if choice&1 == 0 {
				g[s].Dam = motherPairs[s].Sire
			} else {
				g[s].Dam = motherPairs[s].Dam
			}
		}

		genotypes = append(genotypes, g)
	}

	return genotypes
}
