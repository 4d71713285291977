// Package pdfsource adapts PDF files to the extraction pipeline's page
// source interface. Positioned text runs come from ledongthuc/pdf;
// page geometry, content streams, and image resources come from pdfcpu.
package pdfsource
