package scoring

// Issue categories used by the news-controversy vocabulary.
const (
	CategoryProcurement = "procurement"
	CategoryAudit       = "audit"
	CategoryEthics      = "ethics"
	CategoryBudget      = "budget"
	CategoryLegal       = "legal"
)

// newsSeed is the controversy vocabulary for scoring news coverage of
// government entities.
var newsSeed = []KeywordEntry{
	// Procurement violations
	{"bid rigging", CategoryProcurement, 2.0},
	{"bid manipulation", CategoryProcurement, 2.0},
	{"procurement violation", CategoryProcurement, 1.8},
	{"cone of silence", CategoryProcurement, 1.5},
	{"no-bid contract", CategoryProcurement, 1.3},
	{"sole source", CategoryProcurement, 1.0},
	{"contract steering", CategoryProcurement, 2.0},
	{"vendor favoritism", CategoryProcurement, 1.8},
	{"kickback", CategoryProcurement, 2.5},
	{"collusion", CategoryProcurement, 2.5},
	{"rigged bid", CategoryProcurement, 2.0},
	{"procurement fraud", CategoryProcurement, 2.5},
	{"change order", CategoryProcurement, 1.2},
	{"construction fraud", CategoryProcurement, 2.0},
	{"construction bid", CategoryProcurement, 1.0},
	{"contract award", CategoryProcurement, 0.8},
	{"RFP violation", CategoryProcurement, 1.5},
	{"vendor protest", CategoryProcurement, 1.3},

	// Audit findings
	{"audit finding", CategoryAudit, 1.5},
	{"audit report", CategoryAudit, 1.0},
	{"inspector general", CategoryAudit, 1.8},
	{"internal investigation", CategoryAudit, 1.5},
	{"financial irregularities", CategoryAudit, 1.8},
	{"misspending", CategoryAudit, 1.5},
	{"misappropriation", CategoryAudit, 2.0},
	{"unaccounted funds", CategoryAudit, 1.8},
	{"missing funds", CategoryAudit, 2.0},
	{"forensic audit", CategoryAudit, 2.0},

	// Ethics issues
	{"ethics violation", CategoryEthics, 1.8},
	{"ethics complaint", CategoryEthics, 1.5},
	{"conflict of interest", CategoryEthics, 1.5},
	{"self-dealing", CategoryEthics, 2.0},
	{"nepotism", CategoryEthics, 1.5},
	{"corruption", CategoryEthics, 2.5},
	{"bribery", CategoryEthics, 2.5},
	{"misconduct", CategoryEthics, 1.5},
	{"malfeasance", CategoryEthics, 2.0},

	// Budget problems
	{"budget crisis", CategoryBudget, 1.5},
	{"budget shortfall", CategoryBudget, 1.3},
	{"cost overrun", CategoryBudget, 1.5},
	{"over budget", CategoryBudget, 1.3},
	{"budget deficit", CategoryBudget, 1.3},
	{"fiscal mismanagement", CategoryBudget, 1.8},
	{"taxpayer waste", CategoryBudget, 1.5},
	{"wasteful spending", CategoryBudget, 1.5},

	// Legal and investigations
	{"grand jury", CategoryLegal, 2.0},
	{"FBI investigation", CategoryLegal, 2.5},
	{"federal investigation", CategoryLegal, 2.5},
	{"FDLE investigation", CategoryLegal, 2.0},
	{"criminal investigation", CategoryLegal, 2.5},
	{"indictment", CategoryLegal, 2.5},
	{"arrested", CategoryLegal, 2.0},
	{"charged with", CategoryLegal, 2.0},
	{"lawsuit", CategoryLegal, 1.3},
	{"whistleblower", CategoryLegal, 1.8},
}

// rfpSeed is the solicitation-relevance vocabulary: IT consulting, assessment
// and study terms boost, construction and commodity terms suppress.
var rfpSeed = []KeywordEntry{
	// IT consulting and assessment
	{"application rationalization", "it_consulting", 3.0},
	{"IT assessment", "it_consulting", 2.5},
	{"technology assessment", "it_consulting", 2.5},
	{"IT consulting", "it_consulting", 2.0},
	{"IT strategic plan", "it_consulting", 2.5},
	{"IT modernization", "it_consulting", 2.5},
	{"digital transformation", "it_consulting", 2.5},
	{"systems assessment", "it_consulting", 2.0},
	{"infrastructure assessment", "it_consulting", 2.0},
	{"network assessment", "it_consulting", 2.0},
	{"cybersecurity assessment", "it_consulting", 2.5},
	{"security audit", "it_consulting", 2.0},
	{"penetration testing", "it_consulting", 2.0},
	{"IT audit", "it_consulting", 2.0},
	{"technology roadmap", "it_consulting", 2.5},
	{"enterprise architecture", "it_consulting", 2.5},
	{"cloud migration", "it_consulting", 2.0},
	{"cloud assessment", "it_consulting", 2.0},
	{"data center", "it_consulting", 1.5},

	// Software and systems
	{"software implementation", "software", 2.0},
	{"ERP implementation", "software", 2.5},
	{"ERP assessment", "software", 2.5},
	{"financial system", "software", 2.0},
	{"HRIS", "software", 1.5},
	{"human resources system", "software", 1.5},
	{"permitting software", "software", 2.0},
	{"utility billing", "software", 1.5},
	{"asset management system", "software", 2.0},
	{"work order system", "software", 1.5},
	{"GIS", "software", 1.5},
	{"document management", "software", 1.5},
	{"records management", "software", 1.5},

	// Studies and analysis
	{"feasibility study", "study", 2.5},
	{"feasibility assessment", "study", 2.5},
	{"needs assessment", "study", 2.0},
	{"gap analysis", "study", 2.0},
	{"business process", "study", 2.0},
	{"process improvement", "study", 2.0},
	{"workflow analysis", "study", 2.0},
	{"cost benefit analysis", "study", 2.0},
	{"return on investment", "study", 1.5},
	{"benchmark", "study", 1.5},
	{"best practices", "study", 1.5},

	// Professional services
	{"management consulting", "professional_services", 2.0},
	{"organizational assessment", "professional_services", 2.0},
	{"staffing study", "professional_services", 2.0},
	{"performance audit", "professional_services", 2.0},
	{"operational review", "professional_services", 2.0},
	{"efficiency study", "professional_services", 2.0},
	{"strategic planning", "professional_services", 2.0},
	{"master plan", "professional_services", 1.5},
	{"comprehensive plan", "professional_services", 1.5},

	// Data and analytics
	{"data analytics", "data", 2.0},
	{"business intelligence", "data", 2.0},
	{"dashboard", "data", 1.5},
	{"reporting system", "data", 1.5},
	{"data warehouse", "data", 2.0},
	{"data governance", "data", 2.0},
	{"data migration", "data", 2.0},

	// Construction and physical work we do not bid on
	{"construction", "excluded", -3.0},
	{"building renovation", "excluded", -3.0},
	{"roofing", "excluded", -4.0},
	{"paving", "excluded", -4.0},
	{"landscaping", "excluded", -4.0},
	{"plumbing", "excluded", -4.0},
	{"electrical work", "excluded", -3.0},
	{"HVAC", "excluded", -3.0},
	{"flooring", "excluded", -4.0},

	// Physical services
	{"janitorial", "excluded", -4.0},
	{"cleaning services", "excluded", -3.0},
	{"mowing", "excluded", -5.0},
	{"lawn care", "excluded", -5.0},
	{"pest control", "excluded", -4.0},
	{"waste removal", "excluded", -4.0},
	{"debris removal", "excluded", -4.0},

	// Vehicles, equipment, commodities
	{"vehicle purchase", "excluded", -3.0},
	{"heavy equipment", "excluded", -3.0},
	{"uniforms", "excluded", -4.0},
	{"office supplies", "excluded", -3.0},
	{"fuel", "excluded", -4.0},
	{"paper products", "excluded", -4.0},
}

// NewsKeywords returns the built-in news-controversy table.
func NewsKeywords() *KeywordTable {
	return MustKeywordTable(newsSeed)
}

// RFPKeywords returns the built-in solicitation-relevance table.
func RFPKeywords() *KeywordTable {
	return MustKeywordTable(rfpSeed)
}
