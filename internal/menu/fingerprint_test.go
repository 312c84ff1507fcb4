package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oh-my-claude/menubar/internal/models"
)

func sampleViews() []models.SessionView {
	return []models.SessionView{
		{SessionID: "aaa", ControlPort: 9001, Healthy: true, Switched: true, Provider: "deepseek", Model: "deepseek-chat"},
		{SessionID: "bbb", ControlPort: 9002, Healthy: true},
	}
}

func TestFingerprintIsDeterministic(t *testing.T) {
	assert.Equal(t, Fingerprint(sampleViews()), Fingerprint(sampleViews()))
	assert.Equal(t, "", Fingerprint(nil))
}

func TestFingerprintChangesWithEveryField(t *testing.T) {
	base := Fingerprint(sampleViews())

	mutations := map[string]func(v *models.SessionView){
		"session id":   func(v *models.SessionView) { v.SessionID = "zzz" },
		"healthy":      func(v *models.SessionView) { v.Healthy = !v.Healthy },
		"switched":     func(v *models.SessionView) { v.Switched = !v.Switched },
		"provider":     func(v *models.SessionView) { v.Provider = "kimi" },
		"model":        func(v *models.SessionView) { v.Model = "K2.5" },
		"control port": func(v *models.SessionView) { v.ControlPort = 1 },
	}

	for name, mutate := range mutations {
		for i := range sampleViews() {
			t.Run(name, func(t *testing.T) {
				views := sampleViews()
				mutate(&views[i])
				assert.NotEqual(t, base, Fingerprint(views))
			})
		}
	}
}

func TestFingerprintIsInjectiveAcrossSeparators(t *testing.T) {
	a := []models.SessionView{{SessionID: "x", Provider: "a:b", Model: ""}}
	b := []models.SessionView{{SessionID: "x", Provider: "a", Model: "b"}}
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprintIsOrderSensitive(t *testing.T) {
	views := sampleViews()
	reversed := []models.SessionView{views[1], views[0]}
	assert.NotEqual(t, Fingerprint(views), Fingerprint(reversed))
}
