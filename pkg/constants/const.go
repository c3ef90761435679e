package constants

const (
	APIPrefix = "v1"
)
