package espeak

import (
	"strings"
)

// Voice is one row of `espeak --voices` output.
type Voice struct {
	Language string
	Gender   string
	Name     string
	File     string
}

var femaleHints = []string{"zira", "female"}

// ParseVoices reads the table printed by `espeak-ng --voices`. Rows that do
// not have at least the five leading columns are skipped.
func ParseVoices(out string) []Voice {
	var voices []Voice
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 5 || fields[0] == "Pty" {
			continue
		}

		gender := fields[2]
		if i := strings.LastIndex(gender, "/"); i >= 0 {
			gender = gender[i+1:]
		}

		voices = append(voices, Voice{
			Language: fields[1],
			Gender:   strings.ToUpper(gender),
			Name:     fields[3],
			File:     fields[4],
		})
	}
	return voices
}

// SelectVoice prefers a female voice and falls back to the first one listed.
func SelectVoice(voices []Voice) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}
	for _, v := range voices {
		name := strings.ToLower(v.Name)
		for _, hint := range femaleHints {
			if strings.Contains(name, hint) {
				return v, true
			}
		}
		if v.Gender == "F" {
			return v, true
		}
	}
	return voices[0], true
}
