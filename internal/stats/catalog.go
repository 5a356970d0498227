package stats

// Metric selects the derived value an achievement is measured against.
type Metric int

const (
	MetricFirstRecord Metric = iota
	MetricConsecutiveDays
	MetricTotalRecords
	MetricMaxDailyRecords
	MetricMaxSingleDuration
	MetricTotalDuration
	MetricTotalDistinctDays
)

var metricNames = [...]string{
	MetricFirstRecord:       "first_record",
	MetricConsecutiveDays:   "consecutive_days",
	MetricTotalRecords:      "total_records",
	MetricMaxDailyRecords:   "max_daily_records",
	MetricMaxSingleDuration: "max_single_duration",
	MetricTotalDuration:     "total_duration",
	MetricTotalDistinctDays: "total_distinct_days",
}

func (m Metric) String() string {
	if m < 0 || int(m) >= len(metricNames) {
		return "unknown"
	}
	return metricNames[m]
}

// AchievementDefinition is one entry of the achievement catalog.
type AchievementDefinition struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Metric      Metric
	Threshold   int64
}

// catalog is never mutated; Catalog hands out copies.
var catalog = []AchievementDefinition{
	{"first_record", "新手上路", "完成首次打卡", "🏆", MetricFirstRecord, 1},

	{"three_days", "初显毅力", "连续打卡3天", "✨", MetricConsecutiveDays, 3},
	{"seven_days", "一周坚持", "连续打卡7天", "🔥", MetricConsecutiveDays, 7},
	{"fifteen_days", "半月不懈", "连续打卡15天", "💪", MetricConsecutiveDays, 15},
	{"thirty_days", "满月之约", "连续打卡30天", "🌟", MetricConsecutiveDays, 30},
	{"sixty_days", "双月传奇", "连续打卡60天", "👑", MetricConsecutiveDays, 60},
	{"hundred_days", "百日大师", "连续打卡100天", "🎖️", MetricConsecutiveDays, 100},

	{"ten_times_total", "初出茅庐", "累计打卡10次", "📝", MetricTotalRecords, 10},
	{"fifty_times", "坚持不懈", "累计打卡50次", "📊", MetricTotalRecords, 50},
	{"hundred_times", "百次达人", "累计打卡100次", "🏅", MetricTotalRecords, 100},
	{"five_hundred_times", "打卡狂魔", "累计打卡500次", "🤖", MetricTotalRecords, 500},
	{"thousand_times", "千次传说", "累计打卡1000次", "👽", MetricTotalRecords, 1000},

	{"five_times_a_day", "一日五次", "单日打卡5次", "⚡", MetricMaxDailyRecords, 5},
	{"ten_times_a_day", "闪电侠", "单日打卡10次", "💥", MetricMaxDailyRecords, 10},
	{"twenty_times_a_day", "爆肝王者", "单日打卡20次", "💀", MetricMaxDailyRecords, 20},

	{"one_hour_single", "一柱擎天", "单次时长1小时", "⏰", MetricMaxSingleDuration, 3600},
	{"three_hours_single", "持久战", "单次时长3小时", "⏳", MetricMaxSingleDuration, 10800},
	{"five_hours_single", "马拉松", "单次时长5小时", "🏃", MetricMaxSingleDuration, 18000},

	{"ten_hours_total", "十小时俱乐部", "总时长达到10小时", "⏲️", MetricTotalDuration, 36000},
	{"twenty_four_hours", "一天一夜", "总时长达到24小时", "🌙", MetricTotalDuration, 86400},
	{"one_hundred_hours", "百时传奇", "总时长达到100小时", "⌚", MetricTotalDuration, 360000},

	{"seven_days_total", "七日之约", "累计打卡7天", "📅", MetricTotalDistinctDays, 7},
	{"thirty_days_total", "月度之星", "累计打卡30天", "📆", MetricTotalDistinctDays, 30},
	{"hundred_days_total", "百日成就", "累计打卡100天", "🗓️", MetricTotalDistinctDays, 100},
}

// Catalog returns a copy of the achievement definitions in display order.
func Catalog() []AchievementDefinition {
	out := make([]AchievementDefinition, len(catalog))
	copy(out, catalog)
	return out
}
