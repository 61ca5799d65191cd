package querycache

import "dayboard/internal/daykey"

// Key identifies one cacheable read: a collection name plus, for day-keyed
// reads, a date parameter. Distinct parameters get distinct cache slots.
type Key struct {
	Collection string
	Param      string
}

func (k Key) String() string {
	if k.Param == "" {
		return k.Collection
	}
	return k.Collection + ":" + k.Param
}

func TasksKey() Key {
	return Key{Collection: "tasks"}
}

func DailiesKey() Key {
	return Key{Collection: "dailies"}
}

func GoalsKey() Key {
	return Key{Collection: "goals"}
}

func RatingKey(d daykey.Date) Key {
	return Key{Collection: "performanceRating", Param: d.Key()}
}

func AllRatingsKey() Key {
	return Key{Collection: "allPerformanceRatings"}
}

func ReflectionKey(d daykey.Date) Key {
	return Key{Collection: "reflection", Param: d.Key()}
}

func AllReflectionsKey() Key {
	return Key{Collection: "allReflections"}
}
