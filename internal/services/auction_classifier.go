package services

import (
	"sort"
	"strings"
	"time"

	"github.com/yourusername/estate-service/internal/models"
)

// IsUpcoming reports whether an auction date has not yet passed. A date
// stored as a string carries no time of day, so it counts as upcoming for
// the whole of that calendar day in loc. A timestamp is compared exactly.
func IsUpcoming(d models.StoredDate, now time.Time, loc *time.Location) bool {
	if d.IsZero() {
		return false
	}
	if !d.FromString {
		return !d.Time.Before(now)
	}

	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(today)
}

// ApplyFilter keeps auctions matching every non-empty criterion. City and
// property type match exactly, bank agency by case-insensitive substring.
func ApplyFilter(auctions []*models.Auction, filter models.AuctionFilter) []*models.Auction {
	agency := strings.ToLower(strings.TrimSpace(filter.BankAgency))
	out := make([]*models.Auction, 0, len(auctions))
	for _, a := range auctions {
		if filter.City != "" && a.City != filter.City {
			continue
		}
		if filter.PropertyType != "" && a.PropertyType != filter.PropertyType {
			continue
		}
		if agency != "" && !strings.Contains(strings.ToLower(a.BankAgency), agency) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// AvailableAuctions returns Active, upcoming auctions matching filter,
// soonest first
func AvailableAuctions(auctions []*models.Auction, filter models.AuctionFilter, now time.Time, loc *time.Location) []*models.Auction {
	out := make([]*models.Auction, 0, len(auctions))
	for _, a := range ApplyFilter(auctions, filter) {
		if a.Status == models.AuctionActive && IsUpcoming(a.AuctionDate, now, loc) {
			out = append(out, a)
		}
	}
	sortByAuctionDate(out, true)
	return out
}

// SplitOwnerAuctions splits an owner's auctions by date alone into upcoming
// (soonest first) and past (most recent first). Archived rows are kept and
// carry their status.
func SplitOwnerAuctions(auctions []*models.Auction, now time.Time, loc *time.Location) models.MyAuctions {
	result := models.MyAuctions{
		Upcoming: []*models.Auction{},
		Past:     []*models.Auction{},
	}
	for _, a := range auctions {
		if IsUpcoming(a.AuctionDate, now, loc) {
			result.Upcoming = append(result.Upcoming, a)
		} else {
			result.Past = append(result.Past, a)
		}
	}
	sortByAuctionDate(result.Upcoming, true)
	sortByAuctionDate(result.Past, false)
	return result
}

func sortByAuctionDate(auctions []*models.Auction, ascending bool) {
	sort.SliceStable(auctions, func(i, j int) bool {
		a, b := auctions[i].AuctionDate.Time, auctions[j].AuctionDate.Time
		if ascending {
			return a.Before(b)
		}
		return a.After(b)
	})
}
