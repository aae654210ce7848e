package main

import (
	"encoding/json"
	"fmt"

	"github.com/MarkoPoloResearchLab/hotel/internal/config"
	"github.com/MarkoPoloResearchLab/hotel/pkg/hotel"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const (
	flagRoomID       = "id"
	flagRoomNumber   = "number"
	flagRoomType     = "type"
	flagRoomCapacity = "capacity"
	flagRoomPrice    = "price"
	flagRoomCurrency = "currency"
	flagRoomInactive = "inactive"
)

type roomFlags struct {
	id       string
	number   string
	roomType string
	capacity int
	price    string
	currency string
	inactive bool
}

func newRoomsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Maintain the room catalog",
	}
	cmd.AddCommand(newRoomsUpsertCommand(cfg))
	return cmd
}

func newRoomsUpsertCommand(cfg *config.Config) *cobra.Command {
	flags := &roomFlags{}
	cmd := &cobra.Command{
		Use:   "upsert",
		Short: "Create a room, or replace it when --id is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			room, err := flags.room(cfg.Currency())
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			storage, err := openBackend(ctx, cfg)
			if err != nil {
				return fmt.Errorf("database open: %w", err)
			}
			defer storage.close()
			saved, err := storage.catalog.UpsertRoom(ctx, room)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
				"room_id":    saved.ID.String(),
				"number":     saved.Number,
				"type":       saved.Type.String(),
				"capacity":   saved.Capacity,
				"base_price": saved.BasePrice.StringFixed(2),
				"currency":   saved.Currency.String(),
				"active":     saved.Active,
			})
		},
	}
	cmd.Flags().StringVar(&flags.id, flagRoomID, "", "existing room id to replace")
	cmd.Flags().StringVar(&flags.number, flagRoomNumber, "", "room number shown to guests")
	cmd.Flags().StringVar(&flags.roomType, flagRoomType, hotel.RoomTypeStandard.String(), "STANDARD, DELUXE, SUITE, APARTMENT or PENTHOUSE")
	cmd.Flags().IntVar(&flags.capacity, flagRoomCapacity, 2, "maximum guests")
	cmd.Flags().StringVar(&flags.price, flagRoomPrice, "", "base price per night")
	cmd.Flags().StringVar(&flags.currency, flagRoomCurrency, "", "price currency (defaults to the service currency)")
	cmd.Flags().BoolVar(&flags.inactive, flagRoomInactive, false, "hide the room from availability")
	_ = cmd.MarkFlagRequired(flagRoomNumber)
	_ = cmd.MarkFlagRequired(flagRoomPrice)
	return cmd
}

func (flags *roomFlags) room(defaultCurrency hotel.Currency) (hotel.Room, error) {
	room := hotel.Room{
		Number:   flags.number,
		Capacity: flags.capacity,
		Currency: defaultCurrency,
		Active:   !flags.inactive,
	}
	if flags.number == "" {
		return hotel.Room{}, fmt.Errorf("room number is required")
	}
	if flags.capacity < 1 {
		return hotel.Room{}, fmt.Errorf("%w: capacity must be at least 1", hotel.ErrInvalidGuests)
	}
	if flags.id != "" {
		roomID, err := hotel.NewRoomID(flags.id)
		if err != nil {
			return hotel.Room{}, err
		}
		room.ID = roomID
	}
	roomType, err := hotel.ParseRoomType(flags.roomType)
	if err != nil {
		return hotel.Room{}, err
	}
	room.Type = roomType
	price, err := decimal.NewFromString(flags.price)
	if err != nil || !price.IsPositive() {
		return hotel.Room{}, fmt.Errorf("%w: price %q", hotel.ErrAmountOutOfRange, flags.price)
	}
	room.BasePrice = price
	if flags.currency != "" {
		currency, err := hotel.ParseCurrency(flags.currency)
		if err != nil {
			return hotel.Room{}, err
		}
		room.Currency = currency
	}
	return room, nil
}
