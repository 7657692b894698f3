package core

import (
	"cmp"
	"errors"
	"os"
	"strconv"
)

func Address(host string, port int) string {
	return host + ":" + strconv.Itoa(port)
}

// https://stackoverflow.com/a/12518877
func FileExists(filePath string) (bool, error) {
	if _, err := os.Stat(filePath); err == nil {
		return true, nil
	} else if errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else {
		return false, err
	}
}

func FlagChannel(c chan<- struct{}) {
	select {
	case c <- struct{}{}:
	default:
	}
}

func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
