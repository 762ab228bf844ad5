package models

import (
	"hash/fnv"
	"strconv"
	"strings"
)

func fingerprint(parts ...string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.Join(parts, "|")))
	return strconv.FormatUint(h.Sum64(), 36)
}
