package seed

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"os"

	"github.com/zacmccul/chocobo-breeding-calculator/internal/config"
	"github.com/zacmccul/chocobo-breeding-calculator/internal/domain"
	"github.com/zacmccul/chocobo-breeding-calculator/internal/repository"
	"github.com/zacmccul/chocobo-breeding-calculator/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// demoFlockFile 里的陆行鸟覆盖了常见的配对场景：满值对、混合基因对和零剩余次数的个体
const demoFlockFile = "./internal/seed/data/demo_flock.json"

const demoBreederUsername = "demo_breeder"

// SeedDemoFlock 插入一个演示用的驯养师账号和它的鸟舍
func SeedDemoFlock(cfg *config.Config, r *repository.Repository) {
	file, err := os.Open(demoFlockFile)
	if err != nil {
		slog.Error("打开文件失败", "error", err)
		return
	}
	defer file.Close()

	var chocobos []*domain.Chocobo
	if err := json.NewDecoder(file).Decode(&chocobos); err != nil {
		slog.Error("解析演示鸟舍数据失败", "error", err)
		return
	}

	if len(chocobos) == 0 {
		slog.Error("演示鸟舍数据为空")
		return
	}

	for i, c := range chocobos {
		if err := utils.ValidateChocobo(c, cfg.Breeding.StatMax); err != nil {
			slog.Error("演示鸟舍数据非法", "index", i, "error", err)
			return
		}
	}

	// 先尝试获取演示用户
	user, err := r.GetUserByUsername(demoBreederUsername)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 表示演示用户不在数据库中，需要新建并插入
			passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.User.Password), bcrypt.DefaultCost)
			if err != nil {
				slog.Error("生成密码哈希失败", "error", err)
				return
			}

			user = &domain.User{
				Username:     demoBreederUsername,
				PasswordHash: string(passwordHash),
				FullName:     "演示驯养师",
				Email:        demoBreederUsername + "@" + cfg.Email.UserDomain,
				Role:         domain.RoleBreeder,
			}

			if err := r.CreateUser(user); err != nil {
				slog.Error("插入演示用户失败", "error", err)
				return
			}
		default:
			slog.Error("获取演示用户失败", "error", err)
			return
		}
	}

	if err := r.ReplaceFlock(user.ID, chocobos); err != nil {
		slog.Error("插入演示鸟舍失败", "error", err)
		return
	}

	slog.Info("插入演示数据完成", "username", demoBreederUsername, "chocobos", len(chocobos))
}
