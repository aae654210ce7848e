package hotel

import (
	"context"
	"fmt"
)

// CountConflicts returns the number of blocking bookings on roomID overlapping stay,
// ignoring exclude when set.
func (service *Service) CountConflicts(ctx context.Context, roomID RoomID, stay DateRange, exclude *BookingID) (int64, error) {
	if stay.IsZero() {
		return 0, fmt.Errorf("%w: empty stay", ErrInvalidRange)
	}
	return service.store.CountConflicts(ctx, ConflictQuery{RoomID: roomID, Stay: stay, Exclude: exclude})
}

// IsAvailable reports whether roomID has no conflicting bookings for stay.
func (service *Service) IsAvailable(ctx context.Context, roomID RoomID, stay DateRange) (bool, error) {
	conflicts, err := service.CountConflicts(ctx, roomID, stay, nil)
	if err != nil {
		return false, err
	}
	return conflicts == 0, nil
}

// ListAvailableRooms returns active rooms without conflicts for query.Stay, ordered by room number.
// A zero Stay lists every active room matching the filters.
func (service *Service) ListAvailableRooms(ctx context.Context, query RoomQuery) ([]Room, error) {
	if query.MinCapacity < 0 {
		return nil, fmt.Errorf("%w: minimum capacity %d is negative", ErrInvalidGuests, query.MinCapacity)
	}
	if query.Type != "" {
		if _, err := ParseRoomType(query.Type.String()); err != nil {
			return nil, err
		}
	}
	return service.store.ListAvailableRooms(ctx, query)
}
