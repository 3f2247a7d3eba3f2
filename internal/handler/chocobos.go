package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zacmccul/chocobo-breeding-calculator/internal/domain"
	"github.com/zacmccul/chocobo-breeding-calculator/internal/utils"
)

type statPairRequest struct {
	Sire int `json:"sire" validate:"required"`
	Dam  int `json:"dam" validate:"required"`
}

// chocoboRequest 是创建和导入共用的请求格式
// 能力值范围和能力合法性在解码后统一交给 utils.ValidateChocobo 检查，
// 因为能力值上限是配置项，不能写死在 validate 标签里
type chocoboRequest struct {
	Name              string          `json:"name" validate:"required"`
	Gender            string          `json:"gender" validate:"required,oneof=公 母"`
	MaxSpeed          statPairRequest `json:"maxSpeed" validate:"required"`
	Stamina           statPairRequest `json:"stamina" validate:"required"`
	Cunning           statPairRequest `json:"cunning" validate:"required"`
	Acceleration      statPairRequest `json:"acceleration" validate:"required"`
	Endurance         statPairRequest `json:"endurance" validate:"required"`
	AttemptsRemaining int32           `json:"attemptsRemaining" validate:"min=0,max=10"`
	Abilities         []string        `json:"abilities"`
}

func (req *chocoboRequest) toDomain(ownerID int64) *domain.Chocobo {
	abilities := make([]domain.Ability, 0, len(req.Abilities))
	for _, ability := range req.Abilities {
		abilities = append(abilities, domain.Ability(ability))
	}

	return &domain.Chocobo{
		OwnerID:           ownerID,
		Name:              req.Name,
		Gender:            domain.Gender(req.Gender),
		MaxSpeed:          domain.StatPair{Sire: req.MaxSpeed.Sire, Dam: req.MaxSpeed.Dam},
		Stamina:           domain.StatPair{Sire: req.Stamina.Sire, Dam: req.Stamina.Dam},
		Cunning:           domain.StatPair{Sire: req.Cunning.Sire, Dam: req.Cunning.Dam},
		Acceleration:      domain.StatPair{Sire: req.Acceleration.Sire, Dam: req.Acceleration.Dam},
		Endurance:         domain.StatPair{Sire: req.Endurance.Sire, Dam: req.Endurance.Dam},
		AttemptsRemaining: req.AttemptsRemaining,
		Abilities:         abilities,
	}
}

func (h *Handler) CreateChocobo(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req chocoboRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	c := req.toDomain(myInfo.ID)
	if err := utils.ValidateChocobo(c, h.config.Breeding.StatMax); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateChocobo(c); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "chocobos_owner_id_name_key":
				h.errorResponse(w, r, "同名陆行鸟已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 鸟舍发生变化，缓存的最优配对不再可信
	h.invalidatePairingCache(myInfo.ID)

	h.successResponse(w, r, "创建陆行鸟成功", c)
}

func (h *Handler) GetMyChocobos(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	chocobos, err := h.repository.GetChocobosByOwnerID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取鸟舍成功", chocobos)
}

func (h *Handler) GetChocobo(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(ChocoboCtx).(*domain.Chocobo)
	h.successResponse(w, r, "获取陆行鸟成功", c)
}

func (h *Handler) UpdateChocobo(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(ChocoboCtx).(*domain.Chocobo)

	var req struct {
		Name              *string          `json:"name"`
		Gender            *string          `json:"gender" validate:"omitempty,oneof=公 母"`
		MaxSpeed          *statPairRequest `json:"maxSpeed"`
		Stamina           *statPairRequest `json:"stamina"`
		Cunning           *statPairRequest `json:"cunning"`
		Acceleration      *statPairRequest `json:"acceleration"`
		Endurance         *statPairRequest `json:"endurance"`
		AttemptsRemaining *int32           `json:"attemptsRemaining" validate:"omitempty,min=0,max=10"`
		Abilities         *[]string        `json:"abilities"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 将输入的参数解析到 c 中
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Gender != nil {
		c.Gender = domain.Gender(*req.Gender)
	}
	if req.MaxSpeed != nil {
		c.MaxSpeed = domain.StatPair{Sire: req.MaxSpeed.Sire, Dam: req.MaxSpeed.Dam}
	}
	if req.Stamina != nil {
		c.Stamina = domain.StatPair{Sire: req.Stamina.Sire, Dam: req.Stamina.Dam}
	}
	if req.Cunning != nil {
		c.Cunning = domain.StatPair{Sire: req.Cunning.Sire, Dam: req.Cunning.Dam}
	}
	if req.Acceleration != nil {
		c.Acceleration = domain.StatPair{Sire: req.Acceleration.Sire, Dam: req.Acceleration.Dam}
	}
	if req.Endurance != nil {
		c.Endurance = domain.StatPair{Sire: req.Endurance.Sire, Dam: req.Endurance.Dam}
	}
	if req.AttemptsRemaining != nil {
		c.AttemptsRemaining = *req.AttemptsRemaining
	}
	if req.Abilities != nil {
		abilities := make([]domain.Ability, 0, len(*req.Abilities))
		for _, ability := range *req.Abilities {
			abilities = append(abilities, domain.Ability(ability))
		}
		c.Abilities = abilities
	}

	if err := utils.ValidateChocobo(c, h.config.Breeding.StatMax); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateChocobo(c); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新陆行鸟失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidatePairingCache(c.OwnerID)

	h.successResponse(w, r, "更新陆行鸟成功", c)
}

func (h *Handler) DeleteChocobo(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(ChocoboCtx).(*domain.Chocobo)

	if err := h.repository.DeleteChocobo(c.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidatePairingCache(c.OwnerID)

	h.successResponse(w, r, "删除陆行鸟成功", nil)
}

func (h *Handler) ImportChocobos(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req []chocoboRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Var(req, "dive"); err != nil {
		h.badRequest(w, r, err)
		return
	}

	chocobos := make([]*domain.Chocobo, 0, len(req))
	for i := range req {
		c := req[i].toDomain(myInfo.ID)
		if err := utils.ValidateChocobo(c, h.config.Breeding.StatMax); err != nil {
			h.badRequest(w, r, fmt.Errorf("第 %d 条记录非法: %w", i+1, err))
			return
		}
		chocobos = append(chocobos, c)
	}

	// 导入会整体替换当前用户的鸟舍
	if err := h.repository.ReplaceFlock(myInfo.ID, chocobos); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidatePairingCache(myInfo.ID)

	h.successResponse(w, r, "导入鸟舍成功", chocobos)
}

func (h *Handler) ExportChocobos(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	chocobos, err := h.repository.GetChocobosByOwnerID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 导出为可以直接再导入的文件
	w.Header().Set("Content-Disposition", `attachment; filename="chocobos.json"`)
	h.writeJSON(w, r, http.StatusOK, chocobos)
}

// invalidatePairingCache 清除某个用户缓存的最优配对结果
// 缓存清除失败只记录日志，不影响请求本身
func (h *Handler) invalidatePairingCache(ownerID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	keys := []string{
		pairingCacheKey(ownerID, false),
		pairingCacheKey(ownerID, true),
	}
	if err := h.redisClient.Del(ctx, keys...).Err(); err != nil {
		slog.Error("清除配对缓存失败", "ownerID", ownerID, "error", err)
	}
}
