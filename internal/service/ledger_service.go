package service

import (
	"Birrapp/internal/model"
	"Birrapp/internal/pkg/consts"
	"Birrapp/internal/pkg/redis"
	"Birrapp/internal/repository"
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

const (
	totalCacheTTL    = time.Hour
	rankingsCacheTTL = time.Minute
)

// RankingEntry 排行榜条目，name 只保留全名的第一个词
type RankingEntry struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// DayAggregate 单日汇总
type DayAggregate struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
}

// BeerDetail 单条记录明细，日期与时间均按日历时区格式化
type BeerDetail struct {
	ID       uint64  `json:"id"`
	Quantity float64 `json:"quantity"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`
}

type LedgerService interface {
	RecordBeer(ctx context.Context, userID string, quantity float64, drankAt string) (uint64, error)
	RemoveBeer(ctx context.Context, userID string, beerID uint64) (uint64, error)
	UpdateBeer(ctx context.Context, userID string, beerID uint64, quantity float64, drankAt string) (uint64, error)
	GetTotal(ctx context.Context, userID string) (float64, error)
	GetRankings(ctx context.Context, limit int) ([]*RankingEntry, error)
	GetBeersByMonth(ctx context.Context, userID string, year, month int) ([]*DayAggregate, error)
	GetDetailedBeersByMonth(ctx context.Context, userID string, year, month int) ([]*BeerDetail, error)
}

type ledgerServiceImpl struct {
	beerRepo repository.BeerRepo
	loc      *time.Location
}

func NewLedgerService(beerRepo repository.BeerRepo, loc *time.Location) LedgerService {
	return &ledgerServiceImpl{beerRepo: beerRepo, loc: loc}
}

// RecordBeer drankAt 为空表示当前时间，否则按日历时区解析
func (s *ledgerServiceImpl) RecordBeer(ctx context.Context, userID string, quantity float64, drankAt string) (uint64, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}

	drinkTime := time.Now().In(s.loc)
	if drankAt != "" {
		t, err := time.ParseInLocation(consts.DrinkTimeLayout, drankAt, s.loc)
		if err != nil {
			return 0, ErrParamInvalid
		}
		drinkTime = t
	}

	beer := &model.Beer{
		UserID:       userID,
		BeerQuantity: quantity,
		DateDrinked:  drinkTime,
	}
	if err := s.beerRepo.RecordBeer(ctx, beer); err != nil {
		return 0, err
	}

	s.invalidateCaches(ctx, userID)
	return beer.ID, nil
}

func (s *ledgerServiceImpl) RemoveBeer(ctx context.Context, userID string, beerID uint64) (uint64, error) {
	beer, err := s.beerRepo.DeleteBeer(ctx, beerID, userID)
	if err != nil {
		return 0, err
	}
	if beer == nil {
		return 0, ErrBeerNotFound
	}

	s.invalidateCaches(ctx, userID)
	return beer.ID, nil
}

func (s *ledgerServiceImpl) UpdateBeer(ctx context.Context, userID string, beerID uint64, quantity float64, drankAt string) (uint64, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	drinkTime, err := time.ParseInLocation(consts.DrinkTimeLayout, drankAt, s.loc)
	if err != nil {
		return 0, ErrParamInvalid
	}

	beer, err := s.beerRepo.UpdateBeer(ctx, beerID, userID, quantity, drinkTime)
	if err != nil {
		return 0, err
	}
	if beer == nil {
		return 0, ErrBeerNotFound
	}

	s.invalidateCaches(ctx, userID)
	return beer.ID, nil
}

func (s *ledgerServiceImpl) GetTotal(ctx context.Context, userID string) (float64, error) {
	key := consts.BeerTotalKey + userID

	valStr, err := redis.GetValue(ctx, key)
	if err == nil && valStr != "" {
		return strconv.ParseFloat(valStr, 64)
	}

	total, err := s.beerRepo.GetTotal(ctx, userID)
	if err != nil {
		return 0, err
	}

	_ = redis.SetWithExpiration(ctx, key, strconv.FormatFloat(total, 'f', -1, 64), totalCacheTTL)
	return total, nil
}

func (s *ledgerServiceImpl) GetRankings(ctx context.Context, limit int) ([]*RankingEntry, error) {
	if limit <= 0 {
		limit = consts.DefaultRankingsLimit
	}

	// 只缓存默认页
	cacheable := limit == consts.DefaultRankingsLimit
	if cacheable {
		cached, err := redis.GetValue(ctx, consts.BeerRankingsKey)
		if err == nil && cached != "" {
			entries := make([]*RankingEntry, 0)
			if err = json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	rows, err := s.beerRepo.GetRankings(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]*RankingEntry, 0, len(rows))
	for _, row := range rows {
		entry := &RankingEntry{}
		_ = copier.Copy(entry, row)
		entry.Name = firstToken(row.Name)
		entries = append(entries, entry)
	}

	if cacheable {
		if data, err := json.Marshal(entries); err == nil {
			_ = redis.SetWithExpiration(ctx, consts.BeerRankingsKey, data, rankingsCacheTTL)
		}
	}
	return entries, nil
}

// GetBeersByMonth month 入参从 0 开始（与前端日历约定一致），按日历时区逐日汇总
func (s *ledgerServiceImpl) GetBeersByMonth(ctx context.Context, userID string, year, month int) ([]*DayAggregate, error) {
	beers, err := s.getMonthBeers(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	aggs := make([]*DayAggregate, 0)
	byDay := make(map[string]*DayAggregate)
	for _, beer := range beers {
		day := beer.DateDrinked.In(s.loc).Format(time.DateOnly)
		if agg, ok := byDay[day]; ok {
			agg.Quantity += beer.BeerQuantity
			continue
		}
		agg := &DayAggregate{Date: day, Quantity: beer.BeerQuantity}
		byDay[day] = agg
		aggs = append(aggs, agg)
	}
	return aggs, nil
}

func (s *ledgerServiceImpl) GetDetailedBeersByMonth(ctx context.Context, userID string, year, month int) ([]*BeerDetail, error) {
	beers, err := s.getMonthBeers(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	details := make([]*BeerDetail, 0, len(beers))
	for _, beer := range beers {
		local := beer.DateDrinked.In(s.loc)
		details = append(details, &BeerDetail{
			ID:       beer.ID,
			Quantity: beer.BeerQuantity,
			Date:     local.Format(time.DateOnly),
			Time:     local.Format("15:04"),
		})
	}
	return details, nil
}

func (s *ledgerServiceImpl) getMonthBeers(ctx context.Context, userID string, year, month int) ([]*model.Beer, error) {
	if month < 0 || month > 11 || year < 1970 {
		return nil, ErrMonthInvalid
	}
	from := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 1, 0)
	return s.beerRepo.GetBeersBetween(ctx, userID, from, to)
}

func (s *ledgerServiceImpl) invalidateCaches(ctx context.Context, userID string) {
	_ = redis.DeleteKey(ctx, consts.BeerTotalKey+userID)
	_ = redis.DeleteKey(ctx, consts.BeerRankingsKey)
}

func firstToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[0]
}
