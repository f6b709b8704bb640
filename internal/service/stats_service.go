package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// beerDensityKg 每升啤酒约 1.03 公斤
	beerDensityKg = 1.03
	// bottleVolumeL 标准瓶 0.33 升
	bottleVolumeL = 0.33
	// bottleHeightM 标准瓶高约 24 厘米
	bottleHeightM = 0.24
)

type weightComparison struct {
	Threshold float64
	Item      string
	Weight    float64
	Emoji     string
	Phrase    string
}

type heightComparison struct {
	Threshold float64
	Item      string
	Height    float64
	Emoji     string
}

var weightLadder = []weightComparison{
	{2, "chihuahua", 2, "🐕", "¡Solo has bebido el equivalente a {count} chihuahuas! ¿Eres abstemio?"},
	{4, "bebé", 3.5, "👶", "Has bebido {count} bebés de cerveza. ¡Qué tierno!"},
	{8, "gato doméstico", 4.5, "🐱", "Has bebido {count} gatos en cerveza. ¡Miau!"},
	{15, "bola de bolos", 7, "🎳", "Has bebido {count} bolas de bolos. ¡Ya ruedas!"},
	{25, "microondas", 15, "📱", "Has bebido {count} microondas de cerveza. ¡Beep beep!"},
	{40, "golden retriever", 30, "🐕‍🦺", "Has bebido {count} golden retrievers. ¡Buen perro!"},
	{60, "maleta grande", 25, "🧳", "Has bebido {count} maletas de alcohol. ¡Buen viaje!"},
	{80, "canguro adulto", 70, "🦘", "Has bebido {count} canguros borrachos. ¡Hop hop!"},
	{120, "lavadora", 80, "🌀", "Has bebido {count} lavadoras de cerveza. ¡Das vueltas!"},
	{200, "elefante bebé", 150, "🐘", "Has bebido {count} elefantes bebés. Deberías ir al psicólogo"},
}

var heightLadder = []heightComparison{
	{0.5, "lata de refresco", 0.12, "🥤"},
	{1, "botella de agua", 0.25, "💧"},
	{2, "persona promedio", 1.7, "🧍"},
	{5, "jirafa", 5.5, "🦒"},
	{10, "casa de dos pisos", 7, "🏠"},
	{30, "árbol grande", 20, "🌳"},
	{50, "edificio de 15 pisos", 45, "🏢"},
	{100, "Estatua de la Libertad", 93, "🗽"},
	{200, "Torre Eiffel", 330, "🗼"},
	{500, "Empire State Building", 443, "🏙️"},
}

// WeightStats 体重对比：总升数折算公斤后匹配阶梯
type WeightStats struct {
	TotalKg       float64 `json:"total_kg"`
	Item          string  `json:"item"`
	ItemWeightKg  float64 `json:"item_weight_kg"`
	Count         float64 `json:"count"`
	Emoji         string  `json:"emoji"`
	MockingPhrase string  `json:"mocking_phrase"`
}

// HeightStats 瓶塔高度对比：按 0.33L 瓶折算堆叠高度
type HeightStats struct {
	BottleCount   int     `json:"bottle_count"`
	TotalHeightM  float64 `json:"total_height_m"`
	Item          string  `json:"item"`
	ItemHeightM   float64 `json:"item_height_m"`
	Count         float64 `json:"count"`
	Emoji         string  `json:"emoji"`
	MockingPhrase string  `json:"mocking_phrase"`
}

type BeerStats struct {
	TotalLiters float64      `json:"total_liters"`
	Weight      *WeightStats `json:"weight,omitempty"`
	Height      *HeightStats `json:"height,omitempty"`
}

type StatsService interface {
	GetStats(ctx context.Context, userID string) (*BeerStats, error)
}

type statsServiceImpl struct {
	ledgerSvc LedgerService
}

func NewStatsService(ledgerSvc LedgerService) StatsService {
	return &statsServiceImpl{ledgerSvc: ledgerSvc}
}

func (s *statsServiceImpl) GetStats(ctx context.Context, userID string) (*BeerStats, error) {
	total, err := s.ledgerSvc.GetTotal(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &BeerStats{TotalLiters: total}
	if total <= 0 {
		return stats, nil
	}

	stats.Weight = buildWeightStats(total * beerDensityKg)
	stats.Height = buildHeightStats(total)
	return stats, nil
}

func buildWeightStats(weightKg float64) *WeightStats {
	cmp := weightLadder[len(weightLadder)-1]
	for _, c := range weightLadder {
		if weightKg <= c.Threshold {
			cmp = c
			break
		}
	}
	count := roundTenth(weightKg / cmp.Weight)

	return &WeightStats{
		TotalKg:       weightKg,
		Item:          cmp.Item,
		ItemWeightKg:  cmp.Weight,
		Count:         count,
		Emoji:         cmp.Emoji,
		MockingPhrase: strings.ReplaceAll(cmp.Phrase, "{count}", formatCount(count)),
	}
}

func buildHeightStats(liters float64) *HeightStats {
	bottles := int(math.Round(liters / bottleVolumeL))
	totalHeight := float64(bottles) * bottleHeightM

	cmp := heightLadder[len(heightLadder)-1]
	for _, c := range heightLadder {
		if totalHeight <= c.Threshold {
			cmp = c
			break
		}
	}
	count := roundTenth(totalHeight / cmp.Height)

	return &HeightStats{
		BottleCount:   bottles,
		TotalHeightM:  totalHeight,
		Item:          cmp.Item,
		ItemHeightM:   cmp.Height,
		Count:         count,
		Emoji:         cmp.Emoji,
		MockingPhrase: heightPhrase(totalHeight),
	}
}

func heightPhrase(totalHeight float64) string {
	switch {
	case totalHeight < 1:
		return fmt.Sprintf("¡Solo %.1fm de botellas! ¿Ni para llegar al metro?", totalHeight)
	case totalHeight < 5:
		return fmt.Sprintf("%.1fm de botellas. ¡Ya superas a una persona!", totalHeight)
	case totalHeight < 20:
		return fmt.Sprintf("%.1fm de botellas. ¡Podrías escalar una casa!", totalHeight)
	case totalHeight < 100:
		return fmt.Sprintf("%.1fm de botellas. ¡Eres un rascacielos andante!", totalHeight)
	default:
		return fmt.Sprintf("%.1fm de botellas. ¡Deberías aparecer en Google Maps!", totalHeight)
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
