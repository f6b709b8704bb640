package consts

const (
	BeerTotalKey    = "beer:total:"
	BeerRankingsKey = "beer:rankings"
	SessionKey      = "session:token:"
	NotifyChannel   = "notify:broadcast"
)
