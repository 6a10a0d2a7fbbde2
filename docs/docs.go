// Package docs registers the OpenAPI description served at /swagger/doc.json
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/api/health": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"system"
				],
				"summary": "Liveness probe",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.HealthResponse"
						}
					}
				}
			}
		},
		"/api/jobs/meta": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"jobs"
				],
				"summary": "Dataset facets",
				"parameters": [],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/market.MetaResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/jobs/suggestions": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"jobs"
				],
				"summary": "Autocomplete job titles and countries",
				"parameters": [
					{
						"type": "string",
						"description": "Search text",
						"name": "q",
						"in": "query"
					},
					{
						"type": "integer",
						"default": 8,
						"description": "Result count (3-15)",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/market.SuggestionsResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/jobs/insights": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"jobs"
				],
				"summary": "Salary, skills and education for a filter",
				"parameters": [
					{
						"type": "string",
						"description": "Title substring",
						"name": "job_title",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Experience level or All",
						"name": "experience_level",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Country or All",
						"name": "country",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/market.InsightsResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/jobs/listings": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"jobs"
				],
				"summary": "Paged postings, newest first",
				"parameters": [
					{
						"type": "string",
						"description": "Title substring",
						"name": "job_title",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Experience level or All",
						"name": "experience_level",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Country or All",
						"name": "country",
						"in": "query"
					},
					{
						"type": "integer",
						"default": 1,
						"description": "Page number",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"default": 30,
						"description": "Page size (10-250)",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/market.ListingsResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/jobs/salary-by-category": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"jobs"
				],
				"summary": "Average salary per job category",
				"parameters": [
					{
						"type": "string",
						"description": "Title substring",
						"name": "job_title",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Experience level or All",
						"name": "experience_level",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Country or All",
						"name": "country",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/market.SalaryByCategoryResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/jobs/remote-trends": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"jobs"
				],
				"summary": "Remote, hybrid and on-site split",
				"parameters": [
					{
						"type": "string",
						"description": "Title substring",
						"name": "job_title",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Experience level or All",
						"name": "experience_level",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Country or All",
						"name": "country",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/market.RemoteTrendsResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/jobs/common-skills": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"jobs"
				],
				"summary": "Most requested skills",
				"parameters": [
					{
						"type": "string",
						"description": "Title substring",
						"name": "job_title",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Experience level or All",
						"name": "experience_level",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Country or All",
						"name": "country",
						"in": "query"
					},
					{
						"type": "integer",
						"default": 12,
						"description": "Skill count (3-30)",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/market.CommonSkillsResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/jobs/company-size-impact": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"jobs"
				],
				"summary": "Salary by company size",
				"parameters": [
					{
						"type": "string",
						"description": "Title substring",
						"name": "job_title",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Experience level or All",
						"name": "experience_level",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Country or All",
						"name": "country",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/market.CompanySizeImpactResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/jobs/geographic-salary": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"jobs"
				],
				"summary": "Average salary per country",
				"parameters": [
					{
						"type": "string",
						"description": "Title substring",
						"name": "job_title",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Experience level or All",
						"name": "experience_level",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Country or All",
						"name": "country",
						"in": "query"
					},
					{
						"type": "integer",
						"default": 20,
						"description": "Country count (5-80)",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/market.GeographicSalaryResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/jobs/market-evolution": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"jobs"
				],
				"summary": "Monthly postings and salary",
				"parameters": [
					{
						"type": "string",
						"description": "Title substring",
						"name": "job_title",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Experience level or All",
						"name": "experience_level",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Country or All",
						"name": "country",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/market.MarketEvolutionResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"handler.ErrorResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				}
			}
		},
		"handler.HealthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"uptime": {
					"type": "number"
				}
			}
		},
		"market.MetaResponse": {
			"type": "object",
			"properties": {
				"totalPostings": {
					"type": "integer"
				},
				"totalCountries": {
					"type": "integer"
				},
				"experienceLevels": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"countries": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"companySizes": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"dataSource": {
					"type": "string"
				}
			}
		},
		"market.Suggestion": {
			"type": "object",
			"properties": {
				"label": {
					"type": "string"
				},
				"type": {
					"type": "string"
				},
				"count": {
					"type": "integer"
				}
			}
		},
		"market.SuggestionsResponse": {
			"type": "object",
			"properties": {
				"query": {
					"type": "string"
				},
				"suggestions": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/market.Suggestion"
					}
				},
				"dataSource": {
					"type": "string"
				}
			}
		},
		"market.InsightsFilters": {
			"type": "object",
			"properties": {
				"job_title": {
					"type": "string"
				},
				"experience_level": {
					"type": "string"
				},
				"country": {
					"type": "string"
				}
			}
		},
		"market.SkillCount": {
			"type": "object",
			"properties": {
				"skill": {
					"type": "string"
				},
				"count": {
					"type": "integer"
				}
			}
		},
		"market.InsightsResponse": {
			"type": "object",
			"properties": {
				"filters": {
					"$ref": "#/definitions/market.InsightsFilters"
				},
				"totalMatches": {
					"type": "integer"
				},
				"averageSalaryUsd": {
					"type": "integer"
				},
				"topSkills": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/market.SkillCount"
					}
				},
				"minimumEducationRequired": {
					"type": "string"
				},
				"dataSource": {
					"type": "string"
				}
			}
		},
		"market.Listing": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"job_title": {
					"type": "string"
				},
				"salary_usd": {
					"type": "number"
				},
				"salary_currency": {
					"type": "string"
				},
				"experience_level": {
					"type": "string"
				},
				"job_category": {
					"type": "string"
				},
				"company_location": {
					"type": "string"
				},
				"company_size": {
					"type": "string"
				},
				"remote_type": {
					"type": "string"
				},
				"required_skills": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"education_required": {
					"type": "string"
				},
				"posted_date": {
					"type": "string"
				}
			}
		},
		"market.ListingsResponse": {
			"type": "object",
			"properties": {
				"listings": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/market.Listing"
					}
				},
				"currentPage": {
					"type": "integer"
				},
				"chunkSize": {
					"type": "integer"
				},
				"totalPages": {
					"type": "integer"
				},
				"totalMatches": {
					"type": "integer"
				},
				"hasNext": {
					"type": "boolean"
				},
				"dataSource": {
					"type": "string"
				}
			}
		},
		"market.CategorySalary": {
			"type": "object",
			"properties": {
				"job_category": {
					"type": "string"
				},
				"average_salary_usd": {
					"type": "integer"
				},
				"postings": {
					"type": "integer"
				}
			}
		},
		"market.SalaryByCategoryResponse": {
			"type": "object",
			"properties": {
				"categories": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/market.CategorySalary"
					}
				},
				"dataSource": {
					"type": "string"
				}
			}
		},
		"market.RemoteTrend": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string"
				},
				"count": {
					"type": "integer"
				},
				"percentage": {
					"type": "number"
				}
			}
		},
		"market.RemoteTrendsResponse": {
			"type": "object",
			"properties": {
				"trends": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/market.RemoteTrend"
					}
				},
				"totalPostings": {
					"type": "integer"
				},
				"dataSource": {
					"type": "string"
				}
			}
		},
		"market.CommonSkillsResponse": {
			"type": "object",
			"properties": {
				"skills": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/market.SkillCount"
					}
				},
				"totalPostings": {
					"type": "integer"
				},
				"dataSource": {
					"type": "string"
				}
			}
		},
		"market.CompanySizeImpact": {
			"type": "object",
			"properties": {
				"company_size": {
					"type": "string"
				},
				"postings": {
					"type": "integer"
				},
				"average_salary_usd": {
					"type": "integer"
				}
			}
		},
		"market.CompanySizeImpactResponse": {
			"type": "object",
			"properties": {
				"impact": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/market.CompanySizeImpact"
					}
				},
				"dataSource": {
					"type": "string"
				}
			}
		},
		"market.CountrySalary": {
			"type": "object",
			"properties": {
				"country": {
					"type": "string"
				},
				"postings": {
					"type": "integer"
				},
				"average_salary_usd": {
					"type": "integer"
				}
			}
		},
		"market.GeographicSalaryResponse": {
			"type": "object",
			"properties": {
				"countries": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/market.CountrySalary"
					}
				},
				"dataSource": {
					"type": "string"
				}
			}
		},
		"market.MonthPoint": {
			"type": "object",
			"properties": {
				"month": {
					"type": "string"
				},
				"postings": {
					"type": "integer"
				},
				"average_salary_usd": {
					"type": "integer"
				}
			}
		},
		"market.MarketEvolutionResponse": {
			"type": "object",
			"properties": {
				"timeline": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/market.MonthPoint"
					}
				},
				"hasTimeSeries": {
					"type": "boolean"
				},
				"dataSource": {
					"type": "string"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Jobs Market API",
	Description:      "Salary, skills and hiring trends over the jobs dataset",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
