package handler

import (
	"Birrapp/internal/api/dto"
	"Birrapp/internal/api/middleware"
	"Birrapp/internal/pkg/consts"
	"Birrapp/internal/pkg/response"
	"Birrapp/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type BeerHandler struct {
	ledgerSvc service.LedgerService
}

func NewBeerHandler(ledgerSvc service.LedgerService) *BeerHandler {
	return &BeerHandler{ledgerSvc: ledgerSvc}
}

func (s *BeerHandler) Record(c *gin.Context) {
	userId := c.GetString(middleware.UserIDKey)

	var req dto.RecordBeerDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	id, err := s.ledgerSvc.RecordBeer(c, userId, req.Quantity, req.DrankAt)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]uint64{"id": id})
}

func (s *BeerHandler) Remove(c *gin.Context) {
	userId := c.GetString(middleware.UserIDKey)

	beerId, err := s.getBeerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := s.ledgerSvc.RemoveBeer(c, userId, beerId)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]uint64{"id": id})
}

func (s *BeerHandler) Update(c *gin.Context) {
	userId := c.GetString(middleware.UserIDKey)

	beerId, err := s.getBeerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateBeerDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	id, err := s.ledgerSvc.UpdateBeer(c, userId, beerId, req.Quantity, req.DrankAt)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]uint64{"id": id})
}

func (s *BeerHandler) GetTotal(c *gin.Context) {
	userId := c.GetString(middleware.UserIDKey)

	total, err := s.ledgerSvc.GetTotal(c, userId)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]float64{"total": total})
}

func (s *BeerHandler) GetRankings(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(consts.DefaultRankingsLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	rankings, err := s.ledgerSvc.GetRankings(c, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rankings)
}

func (s *BeerHandler) GetByMonth(c *gin.Context) {
	userId := c.GetString(middleware.UserIDKey)

	year, month, err := s.getYearMonth(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	days, err := s.ledgerSvc.GetBeersByMonth(c, userId, year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, days)
}

func (s *BeerHandler) GetDetailedByMonth(c *gin.Context) {
	userId := c.GetString(middleware.UserIDKey)

	year, month, err := s.getYearMonth(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	details, err := s.ledgerSvc.GetDetailedBeersByMonth(c, userId, year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, details)
}

func (s *BeerHandler) getBeerID(c *gin.Context) (uint64, error) {
	beerIdStr := c.Param("beer_id")
	beerId, err := strconv.ParseUint(beerIdStr, 10, 64)
	if err != nil {
		return 0, service.ErrParamInvalid
	}
	return beerId, nil
}

// getYearMonth month 为 0 基（前端日历约定），范围校验在 service 内
func (s *BeerHandler) getYearMonth(c *gin.Context) (int, int, error) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return 0, 0, service.ErrParamInvalid
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		return 0, 0, service.ErrParamInvalid
	}
	return year, month, nil
}
