package tools

// Top-level pipelines
const (
	ServiceAccessibilityPipeline ActionName = "service_accessibility_pipeline"
	StrategyDevelopmentPipeline  ActionName = "strategy_development_pipeline"
)

// Accessibility data-fetch functions
const (
	GeneralStatsCity        ActionName = "get_general_stats_city"
	GeneralStatsDistrictsMO ActionName = "get_general_stats_districts_mo"
	GeneralStatsBlock       ActionName = "get_general_stats_block"
	GeneralStatsEducation   ActionName = "get_general_stats_education"
	GeneralStatsHealthcare  ActionName = "get_general_stats_healthcare"
	GeneralStatsCulture     ActionName = "get_general_stats_culture"
	GeneralStatsSports      ActionName = "get_general_stats_sports"
	GeneralStatsServices    ActionName = "get_general_stats_services"
	GeneralStatsDemography  ActionName = "get_general_stats_demography"
	GeneralStatsHousing     ActionName = "get_general_stats_housing_and_communal_services"

	// Bound in the fetch registry but not offered to the selector model.
	GeneralStatsTransport  ActionName = "get_general_stats_transport"
	GeneralStatsObject     ActionName = "get_general_stats_object"
	GeneralStatsComplaints ActionName = "get_general_stats_complaints"
)
