package repoargs

import "time"

type UpsertUser struct {
	ID           int64
	DisplayName  string
	ReferralCode string
	Now          time.Time
}

type UserAggregation struct {
	TotalUsers   int64
	ActiveUsers  int64
	TotalBalance int64
}
