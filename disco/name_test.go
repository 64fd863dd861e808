package disco

import "testing"

func TestCamel(t *testing.T) {
	testCases := []struct {
		In string
		ex string
	}{
		{In: "billingAccounts", ex: "BillingAccounts"},
		{In: "chrome-management", ex: "ChromeManagement"},
		{In: "my_feed.items", ex: "MyFeedItems"},
		{In: "batch modify", ex: "BatchModify"},
		{In: "search", ex: "Search"},
		{In: "", ex: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.In, func(t *testing.T) {
			if out := Camel(testCase.In); out != testCase.ex {
				t.Fatalf("expected: %q but got: %q", testCase.ex, out)
			}
		})
	}
}

func TestKebab(t *testing.T) {
	testCases := []struct {
		In string
		ex string
	}{
		{In: "billingAccounts", ex: "billing-accounts"},
		{In: "AdSense", ex: "ad-sense"},
		{In: "pageToken", ex: "page-token"},
		{In: "foo_bar.baz", ex: "foo-bar-baz"},
		{In: "batchModify all", ex: "batch-modify-all"},
		{In: "get", ex: "get"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.In, func(t *testing.T) {
			if out := Kebab(testCase.In); out != testCase.ex {
				t.Fatalf("expected: %q but got: %q", testCase.ex, out)
			}
		})
	}
}

func TestPageName(t *testing.T) {
	testCases := []struct {
		Name   string
		Path   []string
		Method string
		ex     string
	}{
		{Name: "APILevel", Method: "search", ex: "search"},
		{Name: "OneDeep", Path: []string{"volumes"}, Method: "get", ex: "volumes_get"},
		{
			Name:   "TwoDeep",
			Path:   []string{"billingAccounts", "budgets"},
			Method: "create",
			ex:     "billing-accounts_budgets-create",
		},
		{
			Name:   "ThreeDeep",
			Path:   []string{"users", "threads", "messages"},
			Method: "batchModify",
			ex:     "users_threads-messages-batch-modify",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			if out := PageName(testCase.Path, testCase.Method); out != testCase.ex {
				t.Fatalf("expected: %q but got: %q", testCase.ex, out)
			}
		})
	}
}

func TestScopeIdent(t *testing.T) {
	testCases := []struct {
		Name string
		API  string
		URL  string
		ex   string
	}{
		{
			Name: "Full",
			API:  "books",
			URL:  "https://www.googleapis.com/auth/books",
			ex:   "Full",
		},
		{
			Name: "FullHost",
			API:  "gmail",
			URL:  "https://mail.google.com/",
			ex:   "Full",
		},
		{
			Name: "FullSquashed",
			API:  "adsense",
			URL:  "https://www.googleapis.com/auth/ad-sense",
			ex:   "Full",
		},
		{
			Name: "PrefixStripped",
			API:  "drive",
			URL:  "https://www.googleapis.com/auth/drive.readonly",
			ex:   "Readonly",
		},
		{
			Name: "Singular",
			API:  "calendar",
			URL:  "https://www.googleapis.com/auth/calendar.events",
			ex:   "Event",
		},
		{
			Name: "Words",
			API:  "chromemanagement",
			URL:  "https://www.googleapis.com/auth/chrome.management.reports.readonly",
			ex:   "ChromeManagementReportReadonly",
		},
		{
			Name: "Storage",
			API:  "bigquery",
			URL:  "https://www.googleapis.com/auth/devstorage.full_control",
			ex:   "DevstorageFullControl",
		},
		{
			Name: "Dashed",
			API:  "billingbudgets",
			URL:  "https://www.googleapis.com/auth/cloud-platform.read-only",
			ex:   "CloudPlatformReadOnly",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			if out := ScopeIdent(testCase.API, testCase.URL); out != testCase.ex {
				t.Fatalf("expected: %q but got: %q", testCase.ex, out)
			}
		})
	}
}

func TestVersionTag(t *testing.T) {
	testCases := []struct {
		In string
		ex string
	}{
		{In: "v1", ex: "1"},
		{In: "v1beta1", ex: "1_beta1"},
		{In: "v1management", ex: "1_management"},
		{In: "v2.1", ex: "2_1"},
		{In: "v1.1beta1", ex: "1_1beta1"},
		{In: "alpha", ex: "alpha"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.In, func(t *testing.T) {
			if out := VersionTag(testCase.In); out != testCase.ex {
				t.Fatalf("expected: %q but got: %q", testCase.ex, out)
			}
		})
	}
}

func TestPkgName(t *testing.T) {
	testCases := []struct {
		Name    string
		Version string
		ex      string
	}{
		{Name: "gamesManagement", Version: "v1management", ex: "gamesmanagement1_management"},
		{Name: "billingbudgets", Version: "v1beta1", ex: "billingbudgets1_beta1"},
		{Name: "books", Version: "v1", ex: "books1"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.ex, func(t *testing.T) {
			if out := PkgName(testCase.Name, testCase.Version); out != testCase.ex {
				t.Fatalf("expected: %q but got: %q", testCase.ex, out)
			}
		})
	}
}

func TestSingular(t *testing.T) {
	testCases := []struct {
		In string
		ex string
	}{
		{In: "reports", ex: "report"},
		{In: "activities", ex: "activity"},
		{In: "address", ex: "address"},
		{In: "readonly", ex: "readonly"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.In, func(t *testing.T) {
			if out := singular(testCase.In); out != testCase.ex {
				t.Fatalf("expected: %q but got: %q", testCase.ex, out)
			}
		})
	}
}
