// internal/service/segment.go
package service

import (
	"sort"

	"github.com/unclebandit/outreach-backend/internal/model"
)

const unknownSegmentValue = "Unknown"

type segmentKey struct {
	industry string
	location string
}

// Segments groups contacts by (industry, location), sorted by that pair.
// Members keep directory order.
func Segments(contacts []model.Contact) []model.Segment {
	groups := map[segmentKey]*model.Segment{}
	for _, c := range contacts {
		key := segmentKey{industry: orUnknown(c.Industry), location: orUnknown(c.Location)}
		seg, ok := groups[key]
		if !ok {
			seg = &model.Segment{Industry: key.industry, Location: key.location}
			groups[key] = seg
		}
		seg.Contacts = append(seg.Contacts, c.ID)
		seg.Count++
	}

	segments := make([]model.Segment, 0, len(groups))
	for _, seg := range groups {
		segments = append(segments, *seg)
	}
	sort.Slice(segments, func(i, j int) bool {
		if segments[i].Industry != segments[j].Industry {
			return segments[i].Industry < segments[j].Industry
		}
		return segments[i].Location < segments[j].Location
	})
	return segments
}

func orUnknown(v string) string {
	if v == "" {
		return unknownSegmentValue
	}
	return v
}
