package client

import (
	"context"

	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

// PlaceSelection is what the place picker hands back.
type PlaceSelection struct {
	PlaceID       int64
	PlaceName     string
	PlaceCategory string
	PlaceImage    string
}

type ItemOptions struct {
	Type      string
	Note      string
	StartTime string
	EndTime   string
}

type DayItems struct {
	c *Client
}

func NewDayItems(c *Client) *DayItems {
	return &DayItems{c: c}
}

// AddPlace appends the selected place to the end of day.
func (d *DayItems) AddPlace(ctx context.Context, day *models.TripDay, sel PlaceSelection, opts ItemOptions) (*models.TripItem, error) {
	if fe := transfer.ValidateTimeWindow(opts.StartTime, opts.EndTime); fe != nil {
		return nil, fe
	}

	order := len(day.Items) + 1
	item, err := d.c.AddPlaceToDay(ctx, day.ID, &transfer.AddTripItemRequest{
		PlaceID:   sel.PlaceID,
		Type:      opts.Type,
		Note:      opts.Note,
		StartTime: opts.StartTime,
		EndTime:   opts.EndTime,
		SortOrder: &order,
	})
	if err != nil {
		return nil, err
	}
	day.Items = append(day.Items, item)
	return item, nil
}

// Remove deletes an item after confirmation and returns the reloaded trip.
func (d *DayItems) Remove(ctx context.Context, tripID, itemID int64, confirm Confirmer) (*models.TripDetail, error) {
	if !confirm.Confirm(ctx, "確定要移除這個地點嗎？") {
		return nil, ErrCancelled
	}
	if err := d.c.RemovePlaceFromTrip(ctx, itemID); err != nil {
		return nil, err
	}
	return d.c.GetTripDetail(ctx, tripID)
}
