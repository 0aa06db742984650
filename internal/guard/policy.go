package guard

import "slices"

// StaticAdmins список администраторов, заданный конфигурацией при старте.
type StaticAdmins struct {
	ids map[int64]struct{}
}

func NewStaticAdmins(ids []int64) *StaticAdmins {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &StaticAdmins{ids: set}
}

func (a *StaticAdmins) IsAdmin(userID int64) bool {
	_, ok := a.ids[userID]
	return ok
}

// IDs администраторы в порядке возрастания, для рассылки уведомлений.
func (a *StaticAdmins) IDs() []int64 {
	ids := make([]int64, 0, len(a.ids))
	for id := range a.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
