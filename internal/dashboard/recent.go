package dashboard

const maxRecentCities = 5

// UpdateRecent moves city to the front, dropping an older copy and anything past five.
func UpdateRecent(recent []string, city string) []string {
	out := make([]string, 0, maxRecentCities)
	out = append(out, city)
	for _, c := range recent {
		if c == city {
			continue
		}
		if len(out) == maxRecentCities {
			break
		}
		out = append(out, c)
	}
	return out
}
