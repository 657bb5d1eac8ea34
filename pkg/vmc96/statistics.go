// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package vmc96

import (
	"fmt"
	"time"
)

// Statistics tracks exchange counts and error rates for a session
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	TotalExchanges   uint64
	SuccessExchanges uint64
	TransportErrors  uint64
	ChecksumErrors   uint64
	MalformedReplies uint64
	SourceMismatches uint64
	LengthMismatches uint64
	RejectedRequests uint64
	BytesSent        uint64
	BytesReceived    uint64

	// Rates (calculated)
	ExchangeRate float64 // exchanges/sec
	ErrorRate    float64 // errors/sec
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// Update records the outcome of one exchange
func (s *Statistics) Update(sent, received int, err error) {
	s.TotalExchanges++
	s.BytesSent += uint64(sent)
	s.BytesReceived += uint64(received)
	s.LastUpdateTime = time.Now()

	switch CodeOf(err) {
	case Success:
		s.SuccessExchanges++
	case ErrPurgeBuffers, ErrWriteData, ErrReadData:
		s.TransportErrors++
	case ErrResponseInvalidChecksum:
		s.ChecksumErrors++
	case ErrResponseMalformed:
		s.MalformedReplies++
	case ErrResponseInvalidSource:
		s.SourceMismatches++
	case ErrResponseInvalidLength:
		s.LengthMismatches++
	default:
		s.RejectedRequests++
	}
}

// Errors returns the number of failed exchanges
func (s *Statistics) Errors() uint64 {
	return s.TotalExchanges - s.SuccessExchanges
}

// CalculateRates calculates exchange and error rates
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.ExchangeRate = float64(s.TotalExchanges) / elapsed
		s.ErrorRate = float64(s.Errors()) / elapsed
	}
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	s.CalculateRates()

	var successPercent float64
	if s.TotalExchanges > 0 {
		successPercent = float64(s.SuccessExchanges) * 100.0 / float64(s.TotalExchanges)
	}

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Exchanges:       %8d\n", s.TotalExchanges)
	result += fmt.Sprintf("Successful:      %8d (%.1f%%)\n", s.SuccessExchanges, successPercent)

	if s.TransportErrors > 0 {
		result += fmt.Sprintf("Transport Errors:%8d\n", s.TransportErrors)
	}
	if s.ChecksumErrors > 0 {
		result += fmt.Sprintf("Checksum Errors: %8d\n", s.ChecksumErrors)
	}
	if s.MalformedReplies > 0 {
		result += fmt.Sprintf("Malformed:       %8d\n", s.MalformedReplies)
	}
	if s.SourceMismatches > 0 {
		result += fmt.Sprintf("Wrong Source:    %8d\n", s.SourceMismatches)
	}
	if s.LengthMismatches > 0 {
		result += fmt.Sprintf("Bad Length:      %8d\n", s.LengthMismatches)
	}
	if s.RejectedRequests > 0 {
		result += fmt.Sprintf("Rejected:        %8d\n", s.RejectedRequests)
	}

	result += fmt.Sprintf("Bytes Out/In:    %8d / %d\n", s.BytesSent, s.BytesReceived)
	result += fmt.Sprintf("Exchange Rate:   %8.1f /sec\n", s.ExchangeRate)
	result += fmt.Sprintf("Error Rate:      %8.1f errors/sec\n", s.ErrorRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters
func (s *Statistics) Reset() {
	*s = *NewStatistics()
}
