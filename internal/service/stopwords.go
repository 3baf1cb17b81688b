package service

import "strings"

var stopWords = func() map[string]bool {
	words := strings.Fields(`
		a about above after again against all also am an and any are as at be because been
		before being below between both but by can could did do does doing down during each
		etc few for from further had has have having he her here hers herself him himself his
		how i if in into is it its itself just least let may me might more most must my myself
		no nor not now of off on once only or other our ours ourselves out over own per same
		shall she should so some such than that the their theirs them themselves then there
		these they this those through to too under until up upon us very via was we well were
		what when where which while who whom whose why will with within without would yet you
		your yours yourself yourselves`)
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}()
