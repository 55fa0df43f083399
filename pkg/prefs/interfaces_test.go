package prefs

//go:generate mockgen -source=interfaces_test.go -destination=mocks_test.go -package=prefs

type storage interface {
	Storage
}

type kvStore interface {
	KeyValueStore
}
