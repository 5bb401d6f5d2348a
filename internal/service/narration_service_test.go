package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/academic-voice-hub/avh-go-api/internal/analytics"
	"github.com/academic-voice-hub/avh-go-api/internal/repository"
	"github.com/academic-voice-hub/avh-go-api/pkg/speech"
)

type recordingSynthesizer struct {
	spoken  []string
	stopped int
}

func (r *recordingSynthesizer) Speak(text string, _ speech.Options) { r.spoken = append(r.spoken, text) }
func (r *recordingSynthesizer) Stop()                               { r.stopped++ }

func newNarrationFixture(t *testing.T) (NarrationService, ResultService, *recordingSynthesizer, AuthService) {
	t.Helper()
	db := setupServiceDB(t)
	seedStudent(t, db, "student_1", "Alice", "R-001")

	synth := &recordingSynthesizer{}
	narrator := speech.NewNarrator(synth, testLogger())

	students := repository.NewStudentRepository(db)
	results := repository.NewResultRepository(db)

	svc := NewNarrationService(results, students, narrator, speech.DefaultOptions, testLogger())
	resultSvc := NewResultService(results, students, testValidator(t), testLogger())
	authSvc := NewAuthService(students, repository.NewTeacherRepository(db), testValidator(t), "secret", testLogger())
	return svc, resultSvc, synth, authSvc
}

func TestNarrationBuildScriptDeterministic(t *testing.T) {
	svc, resultSvc, _, _ := newNarrationFixture(t)
	addResult(t, resultSvc, "student_1", "Math", 80, 100, "2024-2025", "1")

	first, err := svc.BuildScript(context.Background(), "student_1", analytics.Filter{})
	require.NoError(t, err)
	second, err := svc.BuildScript(context.Background(), "student_1", analytics.Filter{})
	require.NoError(t, err)

	require.Equal(t, first.Script, second.Script)
	require.Positive(t, first.EstimatedDurationMS)
	require.Contains(t, first.Script, "Results for Alice, Roll Number R-001. ")
}

func TestNarrationSpeakRequiresVoiceOver(t *testing.T) {
	svc, resultSvc, synth, authSvc := newNarrationFixture(t)
	addResult(t, resultSvc, "student_1", "Math", 80, 100, "2024-2025", "1")

	_, err := svc.Speak(context.Background(), "student_1", analytics.Filter{})
	require.ErrorIs(t, err, ErrVoiceOverDisabled)
	require.Empty(t, synth.spoken)

	_, err = authSvc.SetVoiceOver(context.Background(), "student_1", true)
	require.NoError(t, err)

	response, err := svc.Speak(context.Background(), "student_1", analytics.Filter{})
	require.NoError(t, err)
	require.True(t, response.Speaking)
	require.Len(t, synth.spoken, 1)
}

func TestNarrationSpeakReplacesActiveUtterance(t *testing.T) {
	svc, resultSvc, synth, authSvc := newNarrationFixture(t)
	addResult(t, resultSvc, "student_1", "Math", 80, 100, "2024-2025", "1")

	_, err := authSvc.SetVoiceOver(context.Background(), "student_1", true)
	require.NoError(t, err)

	_, err = svc.Speak(context.Background(), "student_1", analytics.Filter{})
	require.NoError(t, err)
	_, err = svc.Speak(context.Background(), "student_1", analytics.Filter{})
	require.NoError(t, err)

	require.Len(t, synth.spoken, 2)
	require.Equal(t, 1, synth.stopped, "second speak cancels the first utterance")
}

func TestNarrationStopIsIdempotent(t *testing.T) {
	svc, _, synth, _ := newNarrationFixture(t)

	require.NoError(t, svc.Stop(context.Background()))
	require.Zero(t, synth.stopped)
}

func TestNarrationUnknownStudent(t *testing.T) {
	svc, _, _, _ := newNarrationFixture(t)

	_, err := svc.BuildScript(context.Background(), "missing", analytics.Filter{})
	require.ErrorIs(t, err, ErrStudentNotFound)
}
