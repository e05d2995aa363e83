package services

import "github.com/moby/locker"

// KeyedLocker serializes work per key. Entries are dropped by moby/locker
// once nobody holds or waits on them.
type KeyedLocker struct {
	locks *locker.Locker
}

func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{locks: locker.New()}
}

// Lock blocks until key is free and returns the matching unlock func.
func (k *KeyedLocker) Lock(key string) (unlock func()) {
	k.locks.Lock(key)
	return func() {
		_ = k.locks.Unlock(key)
	}
}

// UserLockKey guards default seeding and every write to a user's settings,
// admission date included, together with the settings cache fill.
func UserLockKey(userID string) string {
	return "user:" + userID
}

// DayLockKey guards the read-merge-write of one day row.
func DayLockKey(userID, date string) string {
	return "day:" + userID + "|" + date
}
