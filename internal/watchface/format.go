package watchface

import "time"

const (
	clock24Layout = "15:04"
	clock12Layout = "03:04"
	dateLayout    = "Mon. 02. Jan. 2006"
)

// ProgressWidth is the width of the progress bar s seconds into a minute.
func ProgressWidth(s int) int {
	return ScreenWidth*s/60 + 2
}

// AppendClock appends the hour and minute of t to dst, using a 24-hour
// clock when is24h is set and a zero-padded 12-hour clock otherwise.
func AppendClock(dst []byte, t time.Time, is24h bool) []byte {
	if is24h {
		return t.AppendFormat(dst, clock24Layout)
	}
	return t.AppendFormat(dst, clock12Layout)
}

// AppendDate appends t as e.g. "Mon. 05. Oct. 2026" to dst.
func AppendDate(dst []byte, t time.Time) []byte {
	return t.AppendFormat(dst, dateLayout)
}
