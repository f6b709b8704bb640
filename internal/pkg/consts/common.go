package consts

const (
	// DrinkTimeLayout 前端日历提交的时间格式
	DrinkTimeLayout = "2006-01-02 15:04:05"

	// DefaultTimezone 日历分组使用的固定时区，可在配置中覆盖
	DefaultTimezone = "Europe/Madrid"

	DefaultRankingsLimit = 10
)
