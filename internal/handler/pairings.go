package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/zacmccul/chocobo-breeding-calculator/internal/breeding"
	"github.com/zacmccul/chocobo-breeding-calculator/internal/domain"
)

func pairingCacheKey(ownerID int64, superSprint bool) string {
	return fmt.Sprintf("pairing_best_%d_%t", ownerID, superSprint)
}

func (h *Handler) EvaluatePairing(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		FatherID    int64 `json:"fatherID" validate:"required"`
		MotherID    int64 `json:"motherID" validate:"required"`
		SuperSprint bool  `json:"superSprint"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	father, ok := h.loadOwnChocobo(w, r, myInfo, req.FatherID)
	if !ok {
		return
	}
	mother, ok := h.loadOwnChocobo(w, r, myInfo, req.MotherID)
	if !ok {
		return
	}

	if father.Gender != domain.GenderMale || mother.Gender != domain.GenderFemale {
		h.errorResponse(w, r, "配对必须是一公一母")
		return
	}

	evaluator, err := breeding.New(h.config.Breeding.StatMax, req.SuperSprint)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	score, err := evaluator.Score(father, mother)
	if err != nil {
		switch {
		case errors.Is(err, breeding.ErrInvalidStatValue):
			// 数据入库前都校验过，出现这个错误说明配置的能力值上限和存量数据不一致
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "配对评分成功", &domain.PairingResult{
		Father: father,
		Mother: mother,
		Score:  score,
	})
}

func (h *Handler) FindBestPairing(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		SuperSprint bool `json:"superSprint"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := h.findBestPairingForOwner(myInfo, req.SuperSprint)
	if err != nil {
		switch {
		case errors.Is(err, breeding.ErrInvalidStatValue):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if result == nil {
		h.successResponse(w, r, "鸟舍中没有可行的配对", nil)
		return
	}

	h.successResponse(w, r, "最优配对搜索成功", result)
}

func (h *Handler) SendBreedingReport(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		SuperSprint bool `json:"superSprint"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := h.findBestPairingForOwner(myInfo, req.SuperSprint)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if result == nil {
		h.errorResponse(w, r, "鸟舍中没有可行的配对，无法生成报告")
		return
	}

	// 准备报告邮件
	mailMessage := domain.MailMessage{
		Type: "breeding_report",
		To:   myInfo.Email,
		Data: domain.BreedingReportMailData{
			FullName:    myInfo.FullName,
			FatherName:  result.Father.Name,
			MotherName:  result.Mother.Name,
			Score:       result.Score,
			SuperSprint: req.SuperSprint,
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "配对报告已通过邮件发送", result)
}

// findBestPairingForOwner 在某个用户的鸟舍中搜索最优配对，优先读缓存
// 搜索是整个系统唯一的平方级计算，同一个鸟舍反复查询时没有必要重算
func (h *Handler) findBestPairingForOwner(owner *domain.User, superSprint bool) (*domain.PairingResult, error) {
	key := pairingCacheKey(owner.ID, superSprint)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	cached, err := h.redisClient.Get(ctx, key).Result()
	switch {
	case err == nil:
		result := &domain.PairingResult{}
		if err := json.Unmarshal([]byte(cached), result); err == nil {
			return result, nil
		}
		// 缓存内容损坏时当作未命中，走重算
	case !errors.Is(err, redis.Nil):
		// redis 故障不应该让配对计算不可用，降级为直接计算
		slog.Error("读取配对缓存失败", "key", key, "error", err)
	}

	chocobos, err := h.repository.GetChocobosByOwnerID(owner.ID)
	if err != nil {
		return nil, err
	}

	evaluator, err := breeding.New(h.config.Breeding.StatMax, superSprint)
	if err != nil {
		return nil, err
	}

	result, err := evaluator.FindBestPairing(chocobos)
	if err != nil {
		return nil, err
	}

	if result == nil {
		return nil, nil
	}

	// 写缓存失败同样只记录日志
	if resultData, err := json.Marshal(result); err == nil {
		ttl := time.Duration(h.config.Redis.PairingCacheTTL) * time.Second
		if err := h.redisClient.Set(ctx, key, resultData, ttl).Err(); err != nil {
			slog.Error("写入配对缓存失败", "key", key, "error", err)
		}
	}

	return result, nil
}

// loadOwnChocobo 加载一只陆行鸟并确认它属于当前用户
func (h *Handler) loadOwnChocobo(w http.ResponseWriter, r *http.Request, owner *domain.User, id int64) (*domain.Chocobo, bool) {
	c, err := h.repository.GetChocoboByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, fmt.Sprintf("陆行鸟 %d 不存在", id))
		default:
			h.internalServerError(w, r, err)
		}
		return nil, false
	}

	if c.OwnerID != owner.ID && owner.Role != domain.RoleAdmin {
		h.errorResponse(w, r, "无权操作他人的陆行鸟")
		return nil, false
	}

	return c, true
}
