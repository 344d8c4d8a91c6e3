package market

// Trading holidays published by NSE for the equity derivatives segment,
// keyed by calendar year. Weekday closures only; weekends are handled
// separately by the session gate.
//
// Update this table when NSE publishes the next year's circular.
var nseHolidays = map[int][]string{
	2024: {
		"2024-01-22", // Special Holiday
		"2024-01-26", // Republic Day
		"2024-03-08", // Mahashivratri
		"2024-03-25", // Holi
		"2024-03-29", // Good Friday
		"2024-04-11", // Id-Ul-Fitr
		"2024-04-17", // Shri Ram Navmi
		"2024-05-01", // Maharashtra Day
		"2024-05-20", // General Elections
		"2024-06-17", // Bakri Id
		"2024-07-17", // Moharram
		"2024-08-15", // Independence Day
		"2024-10-02", // Mahatma Gandhi Jayanti
		"2024-11-01", // Diwali Laxmi Pujan
		"2024-11-15", // Gurunanak Jayanti
		"2024-12-25", // Christmas
	},
	2025: {
		"2025-02-26", // Mahashivratri
		"2025-03-14", // Holi
		"2025-03-31", // Id-Ul-Fitr
		"2025-04-10", // Shri Mahavir Jayanti
		"2025-04-14", // Dr. Baba Saheb Ambedkar Jayanti
		"2025-04-18", // Good Friday
		"2025-05-01", // Maharashtra Day
		"2025-08-15", // Independence Day
		"2025-08-27", // Ganesh Chaturthi
		"2025-10-02", // Mahatma Gandhi Jayanti / Dussehra
		"2025-10-21", // Diwali Laxmi Pujan
		"2025-10-22", // Diwali Balipratipada
		"2025-11-05", // Gurunanak Jayanti
		"2025-12-25", // Christmas
	},
	2026: {
		"2026-01-26", // Republic Day
		"2026-02-15", // Mahashivratri
		"2026-03-03", // Holi
		"2026-03-20", // Id-Ul-Fitr
		"2026-03-31", // Shri Mahavir Jayanti
		"2026-04-03", // Good Friday
		"2026-04-14", // Dr. Baba Saheb Ambedkar Jayanti
		"2026-05-01", // Maharashtra Day
		"2026-05-27", // Bakri Id
		"2026-08-14", // Ganesh Chaturthi (observed)
		"2026-10-02", // Mahatma Gandhi Jayanti
		"2026-11-09", // Diwali Laxmi Pujan
		"2026-11-10", // Diwali Balipratipada
		"2026-11-24", // Gurunanak Jayanti
		"2026-12-25", // Christmas
	},
}

// HolidaysForYear returns the holiday list for a calendar year.
// The second return value is false when no list has been configured,
// which callers must treat as a hard error: silently trading through an
// unconfigured year would mark every holiday as a session day.
func HolidaysForYear(year int) ([]string, bool) {
	days, ok := nseHolidays[year]
	return days, ok
}
