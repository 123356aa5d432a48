package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cmms/internal/core/domain"
)

func sampleTask() domain.Task {
	alice := domain.User{ID: 2, Email: "e1@example.com", FirstName: "alicja", LastName: "nowak"}
	return domain.Task{
		ID:          7,
		Title:       "Wymiana filtra",
		Description: "Filtr w centrali",
		Category:    domain.TaskCategoryFailure,
		Priority:    domain.TaskPriorityMedium,
		Deadline:    time.Date(2024, 3, 8, 14, 5, 0, 0, time.UTC),
		Status:      domain.TaskStatusConfirmed,
		Assignees:   []domain.User{alice, {ID: 3, FirstName: "bogdan", LastName: "zielony"}},
		Buildings:   []domain.Building{{Name: "Biuro", Address: "Prosta 1"}, {Name: "Hala", Address: "Długa 3"}},
		Comments: []domain.TaskComment{
			{Text: "Gotowe", User: &alice},
			{Text: "Brak części"},
		},
	}
}

func TestRenderTaskBody(t *testing.T) {
	body := renderTaskBody(sampleTask(), bodyOptions{
		header:       "Zostało zmienione zadanie:",
		withStatus:   true,
		withComments: true,
	})

	expected := "Zostało zmienione zadanie:\n\n" +
		"Nazwa: Wymiana filtra\n" +
		"Przypisana osoba: Alicja Nowak, Bogdan Zielony\n" +
		"Status: Wykonano\n" +
		"Termin: 2024-03-08 14:05\n" +
		"Kategoria: Awarie\n" +
		"Priorytet: Średni\n" +
		"Budynek: Biuro (Prosta 1), Hala (Długa 3)\n" +
		"Opis: Filtr w centrali\n" +
		"Komentarze: - Alicja Nowak: Gotowe\n- -: Brak części\n"
	assert.Equal(t, expected, body)
}

func TestRenderTaskBody_CreationNotice(t *testing.T) {
	task := sampleTask()
	task.Comments = nil

	body := renderTaskBody(task, bodyOptions{header: "Zostało ci przydzielone nowe zadanie:"})

	assert.NotContains(t, body, "Status:")
	assert.NotContains(t, body, "Komentarze:")
	assert.Contains(t, body, "Przypisana osoba: Alicja Nowak, Bogdan Zielony\nTermin:")
}

func TestRenderTaskBody_CustomAssigneesLabel(t *testing.T) {
	task := sampleTask()
	task.Comments = nil

	body := renderTaskBody(task, bodyOptions{
		header:         "x",
		assigneesLabel: "Przypisane osoby:",
		withComments:   true,
	})

	assert.Contains(t, body, "Przypisane osoby: Alicja Nowak, Bogdan Zielony\n")
	assert.Contains(t, body, "Komentarze: Brak\n")
}

func TestUniqueEmails(t *testing.T) {
	got := uniqueEmails([]string{"a@x.pl", " ", "b@x.pl", "A@x.pl", "", " b@x.pl "})
	assert.Equal(t, []string{"a@x.pl", "b@x.pl"}, got)
	assert.Empty(t, uniqueEmails(nil))
}

func TestMimeTypeOf(t *testing.T) {
	assert.Equal(t, "application/pdf", mimeTypeOf("raport.pdf"))
	assert.Equal(t, defaultMimeType, mimeTypeOf("dane.unknownext"))
	assert.Equal(t, defaultMimeType, mimeTypeOf("README"))
}

func TestOthersInvolved(t *testing.T) {
	boss := domain.User{ID: 1, Email: "boss@example.com", IsManager: true}
	task := sampleTask()
	task.CreatedBy = &boss

	fromAlice := othersInvolved(&domain.Actor{User: &task.Assignees[0]}, task)
	assert.Equal(t, []string{"boss@example.com", ""}, fromAlice)

	fromBoss := othersInvolved(&domain.Actor{User: &boss}, task)
	assert.Equal(t, []string{"e1@example.com", ""}, fromBoss)
}
