// Copyright 2022 Maelstrom Research.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

package mdk

// This file holds the fixed Maelstrom mapping data used by the taxonomy
// reshape. The data is kept apart from the traversal logic so it can be
// tested and extended on its own. Lookups that miss return the zero value,
// which the reshape records as null.

// Maelstrom taxonomy names with special handling in the reshape.
const (
	taxoAdditional = "Mlstr_additional"
	taxoArea       = "Mlstr_area"
	taxoHarmo      = "Mlstr_harmo"
)

// scaleTaxonomies are the secondary taxonomies whose terms refine an area
// term via shared term identity.
var scaleTaxonomies = map[string]bool{
	"Mlstr_habits":    true,
	"Mlstr_genhealth": true,
	"Mlstr_cogscale":  true,
	"Mlstr_events":    true,
	"Mlstr_social":    true,
}

// areaShortCodes maps an area vocabulary name to its three-letter code.
// The unknown-vocabulary placeholder maps to ERR; any vocabulary not listed
// here stays unmapped (null).
var areaShortCodes = map[string]string{
	"Sociodemographic_economic_characteristics": "SDC",
	"Lifestyle_behaviours":                      "LSB",
	"Health_status_functional_limitations":      "HST",
	"Diseases":                                  "DIS",
	"Symptoms_signs":                            "SYM",
	"Medication_supplements":                    "MED",
	"Non_pharmacological_interventions":         "NPH",
	"Health_community_care_utilization":         "CAR",
	"End_of_life":                               "EOL",
	"Physical_measures":                         "PME",
	"Laboratory_measures":                       "LAB",
	"Cognitive_measures":                        "COG",
	"Life_events_plans_beliefs_values":          "LIF",
	"Preschool_school_work":                     "SCH",
	"Social_environment":                        "SOC",
	"Physical_environment":                      "PEN",
	"Administrative_information":                "ADM",
	"Perception_health_quality_life":            "PER",
	"Mlstr_area" + unknownVocabSufx:             "ERR",
}

type scaleKey struct {
	taxonomy   string
	vocabulary string
}

// scaleTermNames maps a (scale taxonomy, vocabulary) pair to the canonical
// area term the pair refines; the reshape joins scale rows onto area rows
// through this value. Each scale taxonomy's unknown-vocabulary placeholder
// falls back to its area's catch-all term. Pairs not listed stay unmapped
// and never join.
var scaleTermNames = map[scaleKey]string{
	{"Mlstr_habits", "tobacco"}:                           "Tobacco",
	{"Mlstr_habits", "alcohol"}:                           "Alcohol",
	{"Mlstr_habits", "drugs"}:                             "Drugs",
	{"Mlstr_habits", "nutrition"}:                         "Nutrition",
	{"Mlstr_habits", "breastfeeding"}:                     "Breastfeeding",
	{"Mlstr_habits", "physical_activity"}:                 "Physical_activity",
	{"Mlstr_habits", "sleep"}:                             "Sleep",
	{"Mlstr_habits", "sexual_behaviours"}:                 "Sexual_behaviours",
	{"Mlstr_habits", "technology_devices"}:                "Technology_devices",
	{"Mlstr_habits", "misbehaviour_crime"}:                "Misbehaviour_crime",
	{"Mlstr_habits", "other"}:                             "Other_lifestyle_behaviours",
	{"Mlstr_habits", "Mlstr_habits" + unknownVocabSufx}:   "Other_lifestyle_behaviours",
	{"Mlstr_genhealth", "perception_health"}:              "Perception_health",
	{"Mlstr_genhealth", "quality_life"}:                   "Quality_life",
	{"Mlstr_genhealth", "development"}:                    "Development",
	{"Mlstr_genhealth", "aging"}:                          "Aging",
	{"Mlstr_genhealth", "Mlstr_genhealth" + unknownVocabSufx}: "Perception_health",
	{"Mlstr_cogscale", "cognitive_functioning"}:           "Cognitive_functioning",
	{"Mlstr_cogscale", "personality"}:                     "Personality",
	{"Mlstr_cogscale", "psychological_distress_emotions"}: "Psychological_distress_emotions",
	{"Mlstr_cogscale", "Mlstr_cogscale" + unknownVocabSufx}: "Cognitive_functioning",
	{"Mlstr_events", "life_events"}:                       "Life_events",
	{"Mlstr_events", "life_plans"}:                        "Life_plans",
	{"Mlstr_events", "beliefs_values"}:                    "Beliefs_values",
	{"Mlstr_events", "Mlstr_events" + unknownVocabSufx}:   "Life_events",
	{"Mlstr_social", "social_participation"}:              "Social_participation",
	{"Mlstr_social", "social_support"}:                    "Social_support",
	{"Mlstr_social", "social_network"}:                    "Social_network",
	{"Mlstr_social", "parenting"}:                         "Parenting",
	{"Mlstr_social", "social_position"}:                   "Social_position",
	{"Mlstr_social", "leisure_activities"}:                "Leisure_activities",
	{"Mlstr_social", "Mlstr_social" + unknownVocabSufx}:   "Social_participation",
}
