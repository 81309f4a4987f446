package i18n

// Dictionary keys rendered by the dashboard.
const (
	KeyTitle          = "title"
	KeyMallSelector   = "mallSelector"
	KeyRentCollection = "rentCollection"
	KeyOverdueSAR     = "overdueSAR"
	KeySLACompliance  = "slaCompliance"
	KeyAvgResolution  = "avgResolution"
	KeyTenants        = "tenants"
	KeyInvoices       = "invoices"
	KeyWorkOrders     = "workOrders"
	KeyID             = "id"
	KeyName           = "name"
	KeyUnit           = "unit"
	KeyTenant         = "tenant"
	KeyAmount         = "amount"
	KeyDue            = "due"
	KeyStatus         = "status"
	KeyTitleCol       = "titleCol"
	KeyCreated        = "created"
	KeyResolved       = "resolved"
	KeyExportCSV      = "exportCSV"
	KeyExportPDF      = "exportPDF"
	KeyLanguage       = "language"
	KeyEnglish        = "english"
	KeyArabic         = "arabic"
	KeyLoading        = "loading"
	KeyMockData       = "mockData"
	KeyDataSource     = "dataSource"
	KeyMock           = "mock"
	KeyBackend        = "backend"
	KeyNotConfigured  = "notConfigured"
	KeyNoData         = "noData"
	KeyOverdueK       = "overdueThousands"
)

var english = map[string]string{
	KeyTitle:          "MallOps Dashboard",
	KeyMallSelector:   "Select mall",
	KeyRentCollection: "Rent collection %",
	KeyOverdueSAR:     "Overdue (SAR)",
	KeySLACompliance:  "SLA compliance %",
	KeyAvgResolution:  "Avg resolution (h)",
	KeyTenants:        "Tenants",
	KeyInvoices:       "Invoices",
	KeyWorkOrders:     "Work orders",
	KeyID:             "ID",
	KeyName:           "Name",
	KeyUnit:           "Unit",
	KeyTenant:         "Tenant",
	KeyAmount:         "Amount",
	KeyDue:            "Due",
	KeyStatus:         "Status",
	KeyTitleCol:       "Title",
	KeyCreated:        "Created",
	KeyResolved:       "Resolved",
	KeyExportCSV:      "Export CSV",
	KeyExportPDF:      "Export PDF",
	KeyLanguage:       "Language",
	KeyEnglish:        "English",
	KeyArabic:         "العربية",
	KeyLoading:        "Loading…",
	KeyMockData:       "Mock data",
	KeyDataSource:     "Data source",
	KeyMock:           "Mock",
	KeyBackend:        "Backend",
	KeyNotConfigured:  "not configured",
	KeyNoData:         "No data",
	KeyOverdueK:       "Overdue (k SAR)",
}

var arabic = map[string]string{
	KeyTitle:          "لوحة تشغيل المراكز التجارية",
	KeyMallSelector:   "اختر المركز",
	KeyRentCollection: "نسبة تحصيل الإيجار %",
	KeyOverdueSAR:     "المتأخرات (ريال)",
	KeySLACompliance:  "الالتزام باتفاقية الخدمة %",
	KeyAvgResolution:  "متوسط زمن الحل (ساعة)",
	KeyTenants:        "المستأجرون",
	KeyInvoices:       "الفواتير",
	KeyWorkOrders:     "أوامر العمل",
	KeyID:             "المعرف",
	KeyName:           "الاسم",
	KeyUnit:           "الوحدة",
	KeyTenant:         "المستأجر",
	KeyAmount:         "المبلغ",
	KeyDue:            "الاستحقاق",
	KeyStatus:         "الحالة",
	KeyTitleCol:       "العنوان",
	KeyCreated:        "تاريخ الإنشاء",
	KeyResolved:       "تاريخ الحل",
	KeyExportCSV:      "تصدير CSV",
	KeyExportPDF:      "تصدير PDF",
	KeyLanguage:       "اللغة",
	KeyEnglish:        "English",
	KeyArabic:         "العربية",
	KeyLoading:        "جار التحميل…",
	KeyMockData:       "بيانات تجريبية",
	KeyDataSource:     "مصدر البيانات",
	KeyMock:           "تجريبي",
	KeyBackend:        "الخادم",
	KeyNotConfigured:  "غير مهيأ",
	KeyNoData:         "لا توجد بيانات",
	KeyOverdueK:       "المتأخرات (ألف ريال)",
}
