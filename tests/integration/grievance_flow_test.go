package integration

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"
)

func TestGrievanceFlow_SubmitAssignResolveFeedback(t *testing.T) {
	app := setupApp(t)

	citizen, citizenID := app.login(t, "citizen@civicpulse.com", "CITIZEN")
	admin, _ := app.login(t, "admin@civicpulse.com", "ADMIN")
	officer, officerID := app.login(t, "roads@civicpulse.com", "OFFICER")

	// Step 1: Citizen submits
	code := app.submit(t, citizen, `{
		"title": "Pothole on 5th Main",
		"description": "Deep pothole near the bus stop",
		"category": "road maintenance",
		"priority": "HIGH",
		"location": {"lat": 12.971, "lng": 77.591, "address": "5th Main"}
	}`)

	rec := app.request("GET", "/api/grievances/"+code, "", citizen)
	if rec.Code != http.StatusOK {
		t.Fatalf("get failed: %d %s", rec.Code, rec.Body.String())
	}
	g := data(t, rec)
	if g["status"] != "PENDING" || g["category"] != "Road Maintenance" || g["slaHours"] != float64(48) {
		t.Errorf("unexpected submitted grievance %v", g)
	}
	if g["submittedBy"] != citizenID {
		t.Errorf("expected submitter %s, got %v", citizenID, g["submittedBy"])
	}
	if timeline := g["timeline"].([]interface{}); len(timeline) != 1 {
		t.Fatalf("expected 1 timeline entry, got %d", len(timeline))
	}

	// Step 2: An officer cannot touch an unassigned grievance
	rec = app.request("PATCH", "/api/grievances/"+code, `{"status":"IN_PROGRESS"}`, officer)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unassigned officer, got %d %s", rec.Code, rec.Body.String())
	}

	// Step 3: Admin assigns
	body := fmt.Sprintf(`{"status":"ASSIGNED","assignedOfficerId":%q,"logMessage":"Sent to roads team"}`, officerID)
	rec = app.request("PATCH", "/api/grievances/"+code, body, admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("assign failed: %d %s", rec.Code, rec.Body.String())
	}
	g = data(t, rec)
	if g["assignedOfficerId"] != officerID || g["deadline"] == nil {
		t.Errorf("expected assignment with deadline, got %v", g)
	}
	timeline := g["timeline"].([]interface{})
	if len(timeline) != 2 {
		t.Fatalf("expected 2 timeline entries, got %d", len(timeline))
	}
	last := timeline[1].(map[string]interface{})
	if last["message"] != "Sent to roads team" || last["actor"] != "Super Admin" {
		t.Errorf("unexpected assignment entry %v", last)
	}

	// Step 4: Officer works and resolves; a note-only update adds no entry
	for _, step := range []string{
		`{"status":"IN_PROGRESS"}`,
		`{"resolutionNote":"Filled and levelled"}`,
		`{"status":"RESOLVED"}`,
	} {
		rec = app.request("PATCH", "/api/grievances/"+code, step, officer)
		if rec.Code != http.StatusOK {
			t.Fatalf("update %s failed: %d %s", step, rec.Code, rec.Body.String())
		}
	}
	g = data(t, rec)
	if g["status"] != "RESOLVED" || g["resolvedAt"] == nil || g["resolutionNote"] != "Filled and levelled" {
		t.Errorf("unexpected resolved grievance %v", g)
	}
	if n := len(g["timeline"].([]interface{})); n != 4 {
		t.Errorf("expected 4 timeline entries, got %d", n)
	}

	// Step 5: Feedback once, with a valid rating
	rec = app.request("POST", "/api/grievances/"+code+"/feedback", `{"rating":6}`, citizen)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "INVALID_RATING" {
		t.Fatalf("expected INVALID_RATING, got %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("POST", "/api/grievances/"+code+"/feedback", `{"rating":4,"comment":"Quick fix"}`, citizen)
	if rec.Code != http.StatusCreated {
		t.Fatalf("feedback failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("POST", "/api/grievances/"+code+"/feedback", `{"rating":5}`, citizen)
	if rec.Code != http.StatusConflict || errorCode(t, rec) != "FEEDBACK_NOT_ALLOWED" {
		t.Fatalf("expected FEEDBACK_NOT_ALLOWED, got %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/grievances/"+code+"/feedback", "", admin)
	if list := dataList(t, rec); len(list) != 1 {
		t.Errorf("expected 1 feedback, got %d", len(list))
	}

	// Step 6: Officer performance reflects the rating
	rec = app.request("GET", "/api/users/"+officerID+"/performance", "", admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("performance failed: %d %s", rec.Code, rec.Body.String())
	}
	perf := data(t, rec)
	if perf["averageRating"] != float64(4) || perf["resolvedCount"] != float64(1) {
		t.Errorf("unexpected performance %v", perf)
	}

	// Step 7: Citizen may only reopen
	rec = app.request("PATCH", "/api/grievances/"+code, `{"status":"RESOLVED","resolutionNote":"x"}`, citizen)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for citizen edit, got %d", rec.Code)
	}
	rec = app.request("PATCH", "/api/grievances/"+code, `{"status":"REOPENED"}`, citizen)
	if rec.Code != http.StatusOK {
		t.Fatalf("reopen failed: %d %s", rec.Code, rec.Body.String())
	}
	g = data(t, rec)
	if g["status"] != "REOPENED" || g["resolvedAt"] != nil {
		t.Errorf("expected reopened without resolvedAt, got %v", g)
	}

	// Step 8: Disallowed transitions are rejected
	rec = app.request("PATCH", "/api/grievances/"+code, `{"status":"PENDING"}`, admin)
	if rec.Code != http.StatusConflict || errorCode(t, rec) != "INVALID_TRANSITION" {
		t.Errorf("expected INVALID_TRANSITION, got %d %s", rec.Code, rec.Body.String())
	}

	// Step 9: Audit trail recorded the privileged writes
	rec = app.request("GET", "/api/audit-logs?pageSize=50", "", admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("audit logs failed: %d %s", rec.Code, rec.Body.String())
	}
	actions := map[string]bool{}
	for _, item := range data(t, rec)["items"].([]interface{}) {
		actions[item.(map[string]interface{})["action"].(string)] = true
	}
	for _, want := range []string{"grievance.create", "grievance.assign", "grievance.update", "grievance.feedback"} {
		if !actions[want] {
			t.Errorf("missing audit action %s in %v", want, actions)
		}
	}
}

func TestGrievanceFlow_Listings(t *testing.T) {
	app := setupApp(t)

	citizen, citizenID := app.login(t, "citizen@civicpulse.com", "CITIZEN")
	admin, _ := app.login(t, "admin@civicpulse.com", "ADMIN")
	_, officerID := app.login(t, "waste@civicpulse.com", "OFFICER")

	first := app.submit(t, citizen, `{"description":"Garbage not collected"}`)
	second := app.submit(t, citizen, `{"description":"Water leak","category":"Water Supply"}`)

	rec := app.request("PATCH", "/api/grievances/"+first,
		fmt.Sprintf(`{"status":"ASSIGNED","assignedOfficerId":%q}`, officerID), admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("assign failed: %d %s", rec.Code, rec.Body.String())
	}

	tests := []struct {
		name string
		path string
		want []string
	}{
		{"all newest first", "/api/grievances", []string{second, first}},
		{"by user", "/api/grievances/user/" + citizenID, []string{second, first}},
		{"by officer", "/api/grievances/officer/" + officerID, []string{first}},
		{"by status lowercase", "/api/grievances/status/pending", []string{second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.request("GET", tt.path, "", admin)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			list := dataList(t, rec)
			if len(list) != len(tt.want) {
				t.Fatalf("expected %d grievances, got %d", len(tt.want), len(list))
			}
			for i, code := range tt.want {
				if got := list[i].(map[string]interface{})["id"]; got != code {
					t.Errorf("position %d: expected %s, got %v", i, code, got)
				}
			}
		})
	}

	rec = app.request("GET", "/api/grievances/status/bogus", "", admin)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown status, got %d", rec.Code)
	}
	rec = app.request("GET", "/api/grievances/GRV-0000", "", admin)
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != "GRIEVANCE_NOT_FOUND" {
		t.Errorf("expected GRIEVANCE_NOT_FOUND, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestGrievanceFlow_AnalyticsFollowWrites(t *testing.T) {
	app := setupApp(t)

	citizen, _ := app.login(t, "citizen@civicpulse.com", "CITIZEN")
	admin, _ := app.login(t, "admin@civicpulse.com", "ADMIN")

	rec := app.request("GET", "/api/grievances/analytics/all", "", admin)
	if total := data(t, rec)["totalGrievances"]; total != float64(0) {
		t.Fatalf("expected empty analytics, got %v", total)
	}

	location := `"location":{"lat":12.971,"lng":77.591,"address":"MG Road"}`
	for i := 0; i < 3; i++ {
		app.submit(t, citizen, fmt.Sprintf(`{"description":"Streetlight %d out",%s}`, i, location))
	}

	rec = app.request("GET", "/api/grievances/analytics/all", "", admin)
	if got := data(t, rec); got["totalGrievances"] != float64(3) || got["pendingCount"] != float64(3) {
		t.Errorf("expected analytics to follow new grievances, got %v", got)
	}

	rec = app.request("GET", "/api/grievances/analytics/zones", "", admin)
	zones := dataList(t, rec)
	if len(zones) != 1 || zones[0].(map[string]interface{})["isRedZone"] != true {
		t.Errorf("expected one red zone, got %v", zones)
	}

	rec = app.request("GET", "/api/grievances/analytics/heatmap", "", admin)
	points := dataList(t, rec)
	if len(points) != 1 || points[0].(map[string]interface{})["status"] != "RED_ZONE" {
		t.Errorf("expected one red heat map point, got %v", points)
	}

	for _, path := range []string{
		"/api/grievances/analytics/sla",
		"/api/grievances/analytics/complete",
		"/api/grievances/analytics/grievance-analysis",
	} {
		if rec := app.request("GET", path, "", admin); rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d %s", path, rec.Code, rec.Body.String())
		}
	}
}

func TestGrievanceFlow_UploadImage(t *testing.T) {
	app := setupApp(t)
	citizen, _ := app.login(t, "citizen@civicpulse.com", "CITIZEN")
	code := app.submit(t, citizen, `{"description":"Fallen tree"}`)

	upload := func(token, filename, contentType string, content []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("failed to create part: %v", err)
		}
		_, _ = part.Write(content)
		_ = w.Close()

		req := httptest.NewRequest("POST", "/api/grievances/"+code+"/upload", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		return rec
	}
	storedFiles := func() int {
		entries, err := os.ReadDir(app.UploadDir)
		if err != nil {
			t.Fatalf("failed to read upload dir: %v", err)
		}
		return len(entries)
	}

	rec := upload(citizen, "notes.txt", "text/plain", []byte("hello"))
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "INVALID_UPLOAD" {
		t.Fatalf("expected INVALID_UPLOAD, got %d %s", rec.Code, rec.Body.String())
	}

	rec = upload(citizen, "tree.png", "image/png", []byte("\x89PNG\r\n\x1a\nfake"))
	if rec.Code != http.StatusOK {
		t.Fatalf("upload failed: %d %s", rec.Code, rec.Body.String())
	}
	uploaded := data(t, rec)
	if uploaded["field"] != "image" {
		t.Errorf("expected first upload to set image, got %v", uploaded["field"])
	}
	path, _ := uploaded["path"].(string)
	if !strings.HasPrefix(path, "/uploads/") || strings.Contains(path, app.UploadDir) {
		t.Errorf("expected a public upload path, got %q", path)
	}
	if storedFiles() != 1 {
		t.Fatalf("expected one stored file, got %d", storedFiles())
	}

	// Another citizen and an unassigned officer are refused and leave nothing behind
	rec = app.request("POST", "/api/auth/register", `{"name":"Other","email":"other@example.com","role":"CITIZEN"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	other, _ := app.login(t, "other@example.com", "CITIZEN")
	officer, officerID := app.login(t, "roads@civicpulse.com", "OFFICER")

	for name, token := range map[string]string{"other citizen": other, "unassigned officer": officer} {
		rec = upload(token, "sneaky.png", "image/png", []byte("png"))
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s: expected 403, got %d %s", name, rec.Code, rec.Body.String())
		}
	}
	if storedFiles() != 1 {
		t.Errorf("expected refused uploads to store nothing, got %d files", storedFiles())
	}
	rec = app.request("GET", "/api/grievances/"+code, "", citizen)
	if img := data(t, rec)["resolutionImage"]; img != nil && img != "" {
		t.Errorf("expected no resolution image, got %v", img)
	}

	// Once assigned, the officer may attach the resolution image
	admin, _ := app.login(t, "admin@civicpulse.com", "ADMIN")
	rec = app.request("PATCH", "/api/grievances/"+code, fmt.Sprintf(`{"assignedOfficerId":%q}`, officerID), admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("assign failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = upload(officer, "after.jpg", "image/jpeg", []byte("jpeg"))
	if rec.Code != http.StatusOK {
		t.Fatalf("officer upload failed: %d %s", rec.Code, rec.Body.String())
	}
	if field := data(t, rec)["field"]; field != "resolutionImage" {
		t.Errorf("expected second upload to set resolutionImage, got %v", field)
	}
}
