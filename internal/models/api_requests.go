package models

// RankingsQuery holds the parameters of a season rankings request
type RankingsQuery struct {
	Season string `validate:"required,season"`
	Sort   string `validate:"omitempty,max=64"`
	Dir    string `validate:"omitempty,oneof=asc desc"`
}

// ProjectionsQuery holds the parameters of a projections request
type ProjectionsQuery struct {
	Sort string `validate:"omitempty,max=64"`
	Dir  string `validate:"omitempty,oneof=asc desc"`
}

// GameLogsQuery filters a player's game logs
type GameLogsQuery struct {
	PlayerID string `validate:"required,uuid"`
	Season   string `validate:"omitempty,season"`
	Limit    int    `validate:"gte=0,lte=500"`
}
