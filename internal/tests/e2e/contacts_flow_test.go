package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// birthdayIn returns a 1992 birthday that falls offset days from today.
// 1992 is a leap year, so every month and day exists.
func birthdayIn(offset int) string {
	d := time.Now().AddDate(0, 0, offset)
	return fmt.Sprintf("1992-%02d-%02d", d.Month(), d.Day())
}

func TestContactLifecycle(t *testing.T) {
	s := NewTestServer(t, nil)
	token := s.SignUp("a@example.com", "pw1")

	resp := s.Do(http.MethodPost, "/contacts/", token,
		contactBody("John", "Doe", "john@x.com", "+380501112233", "1990-05-17"))
	require.Equal(t, http.StatusCreated, resp.Status, "create: %s", resp.Body)
	created := resp.JSON(t)
	assert.Equal(t, "John", created["first_name"])
	assert.Equal(t, "1990-05-17", created["birthday"])
	assert.NotContains(t, created, "user_id")
	id := int(created["id"].(float64))

	resp = s.Do(http.MethodGet, "/contacts/", token, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, resp.List(t), 1)

	resp = s.Do(http.MethodPut, fmt.Sprintf("/contacts/%d", id), token,
		contactBody("Janet", "Doe", "john@x.com", "+380501112233", "1990-05-17"))
	require.Equal(t, http.StatusOK, resp.Status, "update: %s", resp.Body)
	assert.Equal(t, "Janet", resp.JSON(t)["first_name"])

	resp = s.Do(http.MethodGet, fmt.Sprintf("/contacts/%d", id), token, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "Janet", resp.JSON(t)["first_name"])

	resp = s.Do(http.MethodDelete, fmt.Sprintf("/contacts/%d", id), token, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "Janet", resp.JSON(t)["first_name"], "delete returns the removed contact")

	resp = s.Do(http.MethodGet, fmt.Sprintf("/contacts/%d", id), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "contact not found", resp.JSON(t)["error"])
}

func TestContactValidationAndConflicts(t *testing.T) {
	s := NewTestServer(t, nil)
	token := s.SignUp("a@example.com", "pw1")

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"bad email", contactBody("John", "Doe", "john", "+380501112233", "1990-05-17")},
		{"bad birthday", contactBody("John", "Doe", "john@x.com", "+380501112233", "17.05.1990")},
		{"missing first name", contactBody("", "Doe", "john@x.com", "+380501112233", "1990-05-17")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.Do(http.MethodPost, "/contacts/", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.Status, "body: %s", resp.Body)
		})
	}

	body := contactBody("John", "Doe", "john@x.com", "+380501112233", "1990-05-17")
	require.Equal(t, http.StatusCreated, s.Do(http.MethodPost, "/contacts/", token, body).Status)
	resp := s.Do(http.MethodPost, "/contacts/", token, body)
	assert.Equal(t, http.StatusConflict, resp.Status, "duplicate email and phone")

	resp = s.Do(http.MethodGet, "/contacts/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestContactPaging(t *testing.T) {
	s := NewTestServer(t, nil)
	token := s.SignUp("a@example.com", "pw1")

	for i := 0; i < 5; i++ {
		body := contactBody(fmt.Sprintf("Name%d", i), "Doe", fmt.Sprintf("c%d@x.com", i), fmt.Sprintf("+3805000000%d", i), "1990-05-17")
		require.Equal(t, http.StatusCreated, s.Do(http.MethodPost, "/contacts/", token, body).Status)
	}

	resp := s.Do(http.MethodGet, "/contacts/?skip=1&limit=2", token, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	page := resp.List(t)
	require.Len(t, page, 2)
	assert.Equal(t, "Name1", page[0]["first_name"])
	assert.Equal(t, "Name2", page[1]["first_name"])

	resp = s.Do(http.MethodGet, "/contacts/?skip=-1", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestContactSearch(t *testing.T) {
	s := NewTestServer(t, nil)
	token := s.SignUp("a@example.com", "pw1")

	for _, body := range []map[string]interface{}{
		contactBody("John", "Doe", "john@x.com", "+380501112233", "1990-05-17"),
		contactBody("Mary", "Johnson", "mary@y.org", "+380501112244", "1985-01-02"),
		contactBody("Peter", "Pan", "peter@x.com", "+380501112255", "1970-12-30"),
	} {
		require.Equal(t, http.StatusCreated, s.Do(http.MethodPost, "/contacts/", token, body).Status)
	}

	tests := []struct {
		query    string
		expected []string
	}{
		{"first_name=Jo", []string{"John"}},
		{"last_name=john", []string{"Mary"}},
		{"email=x.com", []string{"John", "Peter"}},
		{"first_name=Jo&email=y.org", nil},
		{"first_name=%25", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := s.Do(http.MethodGet, "/contacts/search/?"+tt.query, token, nil)
			require.Equal(t, http.StatusOK, resp.Status, "body: %s", resp.Body)
			var names []string
			for _, c := range resp.List(t) {
				names = append(names, c["first_name"].(string))
			}
			assert.ElementsMatch(t, tt.expected, names)
		})
	}
}

func TestUpcomingBirthdays(t *testing.T) {
	s := NewTestServer(t, nil)
	token := s.SignUp("a@example.com", "pw1")

	// 1992 is a leap year so every month/day is representable
	for i, offset := range []int{2, 20} {
		body := contactBody(fmt.Sprintf("In%d", offset), "Doe", fmt.Sprintf("b%d@x.com", i), fmt.Sprintf("+38050999000%d", i), birthdayIn(offset))
		require.Equal(t, http.StatusCreated, s.Do(http.MethodPost, "/contacts/", token, body).Status)
	}

	resp := s.Do(http.MethodGet, "/contacts/upcoming_birthdays/", token, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	upcoming := resp.List(t)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "In2", upcoming[0]["first_name"])
}

func TestUpcomingBirthdaysEmptyList(t *testing.T) {
	s := NewTestServer(t, nil)
	token := s.SignUp("a@example.com", "pw1")

	resp := s.Do(http.MethodGet, "/contacts/upcoming_birthdays/", token, nil)
	require.Equal(t, http.StatusOK, resp.Status)

	var raw json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Body, &raw))
	assert.Equal(t, "[]", string(raw))
}

func TestContactOwnerIsolation(t *testing.T) {
	s := NewTestServer(t, nil)
	alice := s.SignUp("alice@example.com", "pw1")
	bob := s.SignUp("bob@example.com", "pw2")

	resp := s.Do(http.MethodPost, "/contacts/", alice,
		contactBody("John", "Doe", "john@x.com", "+380501112233", birthdayIn(1)))
	require.Equal(t, http.StatusCreated, resp.Status)
	path := fmt.Sprintf("/contacts/%d", int(resp.JSON(t)["id"].(float64)))

	assert.Equal(t, http.StatusNotFound, s.Do(http.MethodGet, path, bob, nil).Status)
	assert.Equal(t, http.StatusNotFound, s.Do(http.MethodPut, path, bob,
		contactBody("Evil", "Bob", "evil@x.com", "+380500000000", "1990-05-17")).Status)
	assert.Equal(t, http.StatusNotFound, s.Do(http.MethodDelete, path, bob, nil).Status)

	resp = s.Do(http.MethodGet, "/contacts/", bob, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Empty(t, resp.List(t))

	resp = s.Do(http.MethodGet, "/contacts/search/?first_name=Jo", bob, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Empty(t, resp.List(t))

	resp = s.Do(http.MethodGet, "/contacts/upcoming_birthdays/", bob, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Empty(t, resp.List(t), "another owner's birthday must not show up")

	resp = s.Do(http.MethodGet, "/contacts/upcoming_birthdays/", alice, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	upcoming := resp.List(t)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "John", upcoming[0]["first_name"])

	resp = s.Do(http.MethodGet, path, alice, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "John", resp.JSON(t)["first_name"])
}
