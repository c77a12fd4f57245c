package monitoring

import (
	"testing"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	metrics := m.GetMetrics()

	// Check if our metric is present
	value, exists := metrics["test_metric"]
	if !exists {
		t.Fatalf("Expected 'test_metric' to be present in metrics, but it was not")
	}

	// Check value
	if value != 42 {
		t.Errorf("Expected 'test_metric' to be 42, but got %v", value)
	}

	// Check uptime presence
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestMonitor_RecordQuery(t *testing.T) {
	m := NewMonitor()

	m.RecordQuery("food_alternatives", "ok")
	m.RecordQuery("food_alternatives", "ok")
	m.RecordQuery("food_alternatives", "not_found")

	metrics := m.GetMetrics()

	value, exists := metrics["food_alternatives_ok"]
	if !exists {
		t.Fatalf("Expected 'food_alternatives_ok' to be present in metrics, but it was not")
	}

	if value != int64(2) {
		t.Errorf("Expected 'food_alternatives_ok' to be 2, but got %v", value)
	}

	value, exists = metrics["food_alternatives_not_found"]
	if !exists {
		t.Fatalf("Expected 'food_alternatives_not_found' to be present in metrics, but it was not")
	}

	if value != int64(1) {
		t.Errorf("Expected 'food_alternatives_not_found' to be 1, but got %v", value)
	}

	// Check timestamp is recorded
	_, exists = metrics["food_alternatives_last_query"]
	if !exists {
		t.Errorf("Expected 'food_alternatives_last_query' to be present in metrics, but it was not")
	}
}

func TestMonitor_Reset(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)
	m.RecordQuery("menu_alternatives", "ok")

	m.Reset()

	metrics := m.GetMetrics()

	// Our test metric should be gone, but uptime should still be there
	_, exists := metrics["test_metric"]
	if exists {
		t.Errorf("Expected 'test_metric' to be removed after Reset(), but it was present")
	}

	_, exists = metrics["menu_alternatives_ok"]
	if exists {
		t.Errorf("Expected 'menu_alternatives_ok' to be removed after Reset(), but it was present")
	}

	// Uptime should still be present (it's added on GetMetrics call)
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}
