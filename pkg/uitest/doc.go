// Package uitest provides helpers for testing Bubble Tea models with teatest.
//
//	func TestPreview(t *testing.T) {
//	    t.Parallel()
//
//	    tm := uitest.NewTestModel(t, model, uitest.Standard)
//	    uitest.WaitForText(t, tm.Output(), "header")
//
//	    tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
//	    tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
//	}
package uitest
