package events

var WatchDeletedTopic = "WatchDeletedEvent"

type WatchDeleted struct {
	WatchID int
}
