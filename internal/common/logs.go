package common

var noopServiceLog = make(chan ServiceLog, 64)

func init() {
	go func() {
		for range noopServiceLog {
		}
	}()
}

// GetNoopServiceLog returns a drained channel for components that are
// run without a live service log loop, tests mostly
func GetNoopServiceLog() chan ServiceLog {
	return noopServiceLog
}

func StopNoopServiceLog() {
	close(noopServiceLog)
}
