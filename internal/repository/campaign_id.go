package repository

import (
	"fmt"
	"strconv"
	"strings"
)

const campaignIDPrefix = "camp-"

// FormatCampaignID renders a 1-based sequence as camp-001; wider numbers keep all digits.
func FormatCampaignID(seq int64) string {
	return fmt.Sprintf("%s%03d", campaignIDPrefix, seq)
}

func ParseCampaignID(id string) (int64, bool) {
	digits, ok := strings.CutPrefix(id, campaignIDPrefix)
	if !ok || len(digits) < 3 {
		return 0, false
	}
	seq, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || seq < 1 || FormatCampaignID(seq) != id {
		return 0, false
	}
	return seq, true
}
