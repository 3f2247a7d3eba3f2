package breeding

import (
	"github.com/zacmccul/chocobo-breeding-calculator/internal/domain"
)

// FindBestPairing 在一群陆行鸟中穷举所有 (公, 母) 组合，返回评分最高的配对
// 任意一个性别分组为空时返回 (nil, nil)，表示没有可行的配对，这不是错误
// 评分并列时保留按传入顺序最先遇到的配对，保证结果可复现
func (e *Evaluator) FindBestPairing(chocobos []*domain.Chocobo) (*domain.PairingResult, error) {
	var males, females []*domain.Chocobo
	for _, c := range chocobos {
		switch c.Gender {
		case domain.GenderMale:
			males = append(males, c)
		case domain.GenderFemale:
			females = append(females, c)
		}
	}

	if len(males) == 0 || len(females) == 0 {
		return nil, nil
	}

	var best *domain.PairingResult

	for _, father := range males {
		for _, mother := range females {
			score, err := e.Score(father, mother)
			if err != nil {
				return nil, err
			}

			if best == nil || score > best.Score {
				best = &domain.PairingResult{
					Father: father,
					Mother: mother,
					Score:  score,
				}
			}
		}
	}

	return best, nil
}
