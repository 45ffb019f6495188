package model

import "github.com/atharv3903/ambroute/internal/scenario"

type NearestResponse struct {
	Scenario      string   `json:"scenario"`
	Origin        string   `json:"origin"`
	Facility      string   `json:"facility"`
	Minutes       int64    `json:"minutes"`
	Path          []string `json:"path"`
	ExploredNodes int      `json:"explored_nodes"`
	CacheHit      bool     `json:"cache_hit"`
}

type RouteResponse struct {
	Scenario      string   `json:"scenario"`
	Path          []string `json:"path"`
	Total         int64    `json:"total"`
	ExploredNodes int      `json:"explored_nodes"`
	CacheHit      bool     `json:"cache_hit"`
}

type Leg struct {
	Path    []string `json:"path"`
	Minutes int64    `json:"minutes"`
}

type DispatchResponse struct {
	Scenario string   `json:"scenario"`
	Base     string   `json:"base"`
	Incident string   `json:"incident"`
	Out      Leg      `json:"out"`
	Back     Leg      `json:"back"`
	Total    int64    `json:"total"`
	Path     []string `json:"path"`
	CacheHit bool     `json:"cache_hit"`
}

type PlacesResponse struct {
	Scenario string           `json:"scenario"`
	Places   []scenario.Place `json:"places"`
}

type RoadUpdateRequest struct {
	RoadID  int64  `json:"road_id"`
	Minutes *int64 `json:"minutes,omitempty"`
	Closed  *bool  `json:"closed,omitempty"`
}

type RoadUpdateResponse struct {
	OK       bool   `json:"ok"`
	Scenario string `json:"scenario"`
}

type CacheStats struct {
	Graphs    int    `json:"graphs"`
	Gets      int    `json:"gets"`
	Hits      int    `json:"hits"`
	Puts      int    `json:"puts"`
	Evictions int    `json:"evictions"`
	Routes    int    `json:"routes"`
	RouteHits uint64 `json:"route_hits"`
	Epoch     uint64 `json:"epoch"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
